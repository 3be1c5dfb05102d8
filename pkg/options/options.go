// Package options defines the shared options contract for configurable components.
package options

import (
	"strings"

	"github.com/spf13/pflag"
)

// IOptions is implemented by every option group that can validate itself
// and register its command line flags.
type IOptions interface {
	// Validate 校验配置项，返回全部校验错误。
	Validate() []error

	// AddFlags 将配置项注册到 flagset，prefixes 用于区分同类组件。
	AddFlags(fs *pflag.FlagSet, prefixes ...string)
}

// Join builds a flag name prefix from the given parts, e.g.
// Join("embedding") + "provider" yields "embedding.provider".
// An empty prefix list yields "".
func Join(prefixes ...string) string {
	joined := strings.Join(prefixes, ".")
	if joined == "" {
		return ""
	}
	return joined + "."
}
