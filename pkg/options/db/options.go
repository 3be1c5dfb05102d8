// Package db provides relational database configuration options.
package db

import (
	"fmt"
	"time"

	"github.com/NikhilAnand12/BOT-GPT/pkg/options"
	"github.com/spf13/pflag"
)

var _ options.IOptions = (*Options)(nil)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Options contains relational database configuration.
type Options struct {
	// Driver 数据库驱动（sqlite|mysql|postgres）。
	Driver string `json:"driver" mapstructure:"driver"`

	// DSN 连接串。sqlite 驱动下为数据库文件路径。
	DSN string `json:"dsn" mapstructure:"dsn"`

	// MaxIdleConns 最大空闲连接数。
	MaxIdleConns int `json:"max-idle-conns" mapstructure:"max-idle-conns"`

	// MaxOpenConns 最大打开连接数。
	MaxOpenConns int `json:"max-open-conns" mapstructure:"max-open-conns"`

	// ConnMaxLifetime 连接最大存活时间。
	ConnMaxLifetime time.Duration `json:"conn-max-lifetime" mapstructure:"conn-max-lifetime"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		Driver:          DriverSQLite,
		DSN:             "botgpt.db",
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: time.Hour,
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Driver, options.Join(prefixes...)+"db.driver", o.Driver, "Database driver (sqlite|mysql|postgres).")
	fs.StringVar(&o.DSN, options.Join(prefixes...)+"db.dsn", o.DSN, "Database connection string; file path for sqlite.")
	fs.IntVar(&o.MaxIdleConns, options.Join(prefixes...)+"db.max-idle-conns", o.MaxIdleConns, "Maximum number of idle connections.")
	fs.IntVar(&o.MaxOpenConns, options.Join(prefixes...)+"db.max-open-conns", o.MaxOpenConns, "Maximum number of open connections.")
	fs.DurationVar(&o.ConnMaxLifetime, options.Join(prefixes...)+"db.conn-max-lifetime", o.ConnMaxLifetime, "Maximum connection lifetime.")
}

// Validate validates the options.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	switch o.Driver {
	case DriverSQLite, DriverMySQL, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unsupported db driver: %q", o.Driver))
	}
	if o.DSN == "" {
		errs = append(errs, fmt.Errorf("db dsn is required"))
	}
	return errs
}
