// Package upload provides file upload configuration options.
package upload

import (
	"fmt"

	"github.com/NikhilAnand12/BOT-GPT/pkg/options"
	"github.com/spf13/pflag"
)

var _ options.IOptions = (*Options)(nil)

// Options contains file upload configuration.
type Options struct {
	// Dir 上传文件的存储目录。
	Dir string `json:"dir" mapstructure:"dir"`

	// MaxSize 单个文件的最大字节数。
	MaxSize int64 `json:"max-size" mapstructure:"max-size"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		Dir:     "_output/uploads",
		MaxSize: 10 << 20,
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Dir, options.Join(prefixes...)+"upload.dir", o.Dir, "Directory for uploaded files.")
	fs.Int64Var(&o.MaxSize, options.Join(prefixes...)+"upload.max-size", o.MaxSize, "Maximum upload size in bytes.")
}

// Validate validates the options.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if o.Dir == "" {
		errs = append(errs, fmt.Errorf("upload dir is required"))
	}
	if o.MaxSize <= 0 {
		errs = append(errs, fmt.Errorf("upload max-size must be positive"))
	}
	return errs
}
