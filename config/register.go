package config

import (
	"github.com/a-peyrard/singlet"
	"github.com/a-peyrard/singlet/option"
)

// RegisterConfig registers a factory producing a *T loaded from the
// environment. The config is loaded lazily, on first resolution, and then
// memoized like any other singleton.
func RegisterConfig[T any](col *singlet.Collection, opts ...option.Option[Options]) {
	singlet.Register(col, func(*singlet.Provider) (*T, error) {
		return Load[T](opts...)
	})
}
