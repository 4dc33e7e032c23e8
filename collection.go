package singlet

import (
	"fmt"
	"reflect"

	"github.com/a-peyrard/singlet/option"
	"github.com/rs/zerolog"
)

type (
	// Collection accumulates registrations until Build freezes them into a
	// Provider. It is write-only: nothing can be resolved from a Collection,
	// and a built collection cannot register anymore.
	Collection struct {
		reg *registry
		log zerolog.Logger
	}

	// Options configures a Collection and the Provider built from it.
	Options struct {
		logger zerolog.Logger
	}
)

// WithLogger sets the logger used by the collection and, later, by the
// provider it builds. The default is zerolog.Nop().
func WithLogger(logger zerolog.Logger) option.Option[Options] {
	return func(opts *Options) {
		opts.logger = logger
	}
}

// NewCollection creates an empty collection.
func NewCollection(opts ...option.Option[Options]) *Collection {
	options := option.Build(&Options{logger: zerolog.Nop()}, opts...)

	return &Collection{
		reg: newRegistry(),
		log: options.logger,
	}
}

// Register stores a one-shot factory under T's identity. The factory runs
// on the first resolution of T, at most once ever, and receives the
// Provider so it can resolve its own dependencies. Registering the same
// type again overwrites the previous registration (last one wins);
// registering is only meant to happen before Build.
func Register[T any](c *Collection, build func(*Provider) (T, error)) {
	t := TypeOf[T]()
	c.ensureOpen(t)

	c.log.Debug().Str("type", t.String()).Msg("registering factory")
	c.reg.insertFactory(t, func(p *Provider) (any, error) {
		return build(p)
	})
}

// RegisterInstance stores an already-built value under T's identity. The
// entry starts resolved: no factory is ever involved and Resolve hands back
// this exact value.
func RegisterInstance[T any](c *Collection, value T) {
	t := TypeOf[T]()
	c.ensureOpen(t)

	c.log.Debug().Str("type", t.String()).Msg("registering instance")
	c.reg.insertInstance(t, value)
}

// Build freezes the registrations into a Provider. The collection is
// consumed: any Register call after Build panics.
func (c *Collection) Build() *Provider {
	if c.reg == nil {
		panic("collection has already been built")
	}

	reg := c.reg
	c.reg = nil

	c.log.Debug().Int("entries", len(reg.entries)).Msg("collection built")
	return &Provider{
		reg: reg,
		log: c.log,
	}
}

func (c *Collection) ensureOpen(t reflect.Type) {
	if c.reg == nil {
		panic(fmt.Sprintf("collection has already been built, cannot register %s", t))
	}
}
