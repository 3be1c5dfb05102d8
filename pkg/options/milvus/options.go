// Package milvusopts provides connection options for the Milvus vector database.
package milvusopts

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/NikhilAnand12/BOT-GPT/pkg/options"
)

var _ options.IOptions = (*Options)(nil)

// Options contains Milvus client configuration.
type Options struct {
	// Address Milvus 服务地址（host:port）。
	Address string `json:"address" mapstructure:"address"`

	// Database 使用的数据库名。
	Database string `json:"database" mapstructure:"database"`

	// Username 认证用户名，可为空。
	Username string `json:"username" mapstructure:"username"`

	// Password 认证密码，可为空。
	Password string `json:"password" mapstructure:"password"`

	// Timeout 连接与操作超时。
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		Address:  "localhost:19530",
		Database: "default",
		Timeout:  30 * time.Second,
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	prefix := options.Join(prefixes...)
	fs.StringVar(&o.Address, prefix+"milvus.address", o.Address, "Milvus server address (host:port).")
	fs.StringVar(&o.Database, prefix+"milvus.database", o.Database, "Milvus database name.")
	fs.StringVar(&o.Username, prefix+"milvus.username", o.Username, "Milvus username for authentication.")
	fs.StringVar(&o.Password, prefix+"milvus.password", o.Password, "Milvus password for authentication.")
	fs.DurationVar(&o.Timeout, prefix+"milvus.timeout", o.Timeout, "Connection and operation timeout.")
}

// Validate validates the options.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if o.Address == "" {
		errs = append(errs, fmt.Errorf("milvus address is required"))
	}
	if o.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("milvus timeout must be positive"))
	}
	return errs
}
