// Package config loads typed configuration structs from the environment,
// backed by viper.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/a-peyrard/singlet/fn"
	"github.com/a-peyrard/singlet/option"
	"github.com/a-peyrard/singlet/reflectutils"
	"github.com/a-peyrard/singlet/str"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type (
	// Options configures Load.
	Options struct {
		prefix string
		logger zerolog.Logger
	}

	// WithDefault lets a config struct, or any struct nested in one, fill
	// its own defaults after the environment has been read.
	WithDefault interface {
		ApplyDefault()
	}
)

// WithEnvPrefix namespaces every environment variable read by Load.
func WithEnvPrefix(prefix string) option.Option[Options] {
	return func(opts *Options) {
		opts.prefix = prefix
	}
}

// WithLogger sets the logger used while loading. The default is
// zerolog.Nop().
func WithLogger(logger zerolog.Logger) option.Option[Options] {
	return func(opts *Options) {
		opts.logger = logger
	}
}

// Load reads a T from the environment. Variable names are derived from the
// struct fields (or their mapstructure tags), converted to
// SCREAMING_SNAKE_CASE and joined with the prefix: with prefix "PG", the
// field Broker.PoolSize binds to PG_BROKER_POOL_SIZE. After unmarshalling,
// nil struct pointers are allocated and every struct implementing
// WithDefault gets ApplyDefault called.
func Load[T any](opts ...option.Option[Options]) (*T, error) {
	options := option.Build(&Options{logger: zerolog.Nop()}, opts...)

	v := viper.New()
	v.SetEnvPrefix(options.prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var conf T
	bindEnvs(v, options.logger, options.prefix, reflect.TypeOf(conf), nil)

	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config %T:\n\t%w", conf, err)
	}

	applyDefaults(&conf)

	options.logger.Debug().Str("type", reflect.TypeOf(conf).String()).Msg("config loaded")
	return &conf, nil
}

// bindEnvs declares one binding per leaf field, so viper knows about every
// key even when no file or flag ever mentions it.
func bindEnvs(v *viper.Viper, logger zerolog.Logger, prefix string, typ reflect.Type, path []string) {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name, ok := field.Tag.Lookup("mapstructure")
		if !ok {
			name = field.Name
		}
		fieldPath := append(append([]string{}, path...), name)

		fieldType := field.Type
		for fieldType.Kind() == reflect.Pointer {
			fieldType = fieldType.Elem()
		}
		if fieldType.Kind() == reflect.Struct {
			bindEnvs(v, logger, prefix, fieldType, fieldPath)
			continue
		}

		key := strings.Join(fieldPath, ".")
		if err := v.BindEnv(key, envName(prefix, fieldPath)); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("unable to bind env var")
		}
	}
}

func envName(prefix string, path []string) string {
	parts := make([]string, 0, len(path)+1)
	if prefix != "" {
		parts = append(parts, strings.ToUpper(prefix))
	}
	for _, segment := range path {
		parts = append(parts, str.ToScreamingSnakeCase(segment))
	}
	return strings.Join(parts, "_")
}

func applyDefaults(conf any) {
	withDefaultType := reflect.TypeOf((*WithDefault)(nil)).Elem()
	reflectutils.WalkStruct(conf, fn.AllBiConsumer(
		reflectutils.CreateNilStructs,
		func(val reflect.Value, typ reflect.Type) {
			if typ.Implements(withDefaultType) && val.IsValid() {
				val.Interface().(WithDefault).ApplyDefault()
			}
		},
	))
}
