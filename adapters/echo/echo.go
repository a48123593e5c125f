// Package animalecho mounts animalform components on an Echo server.
//
//	e := echo.New()
//	reg := animalecho.Mount(e, animalecho.WithKey(key))
//	reg.Add(animalform.New(onCreate))
//
// Or mount on a group so the form shares the group's middleware:
//
//	g := e.Group("", authMiddleware)
//	reg := animalecho.MountGroup(g)
package animalecho

import (
	"crypto/rand"
	"fmt"
	"log/slog"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/pthm/animalform"
)

// Option configures Mount and MountGroup.
type Option func(*options)

type options struct {
	key    []byte
	logger *slog.Logger
}

// WithKey sets the key used to sign or encrypt form state. It should be at
// least 32 bytes of random data. Without it a random key is generated, which
// invalidates every rendered form when the process restarts.
func WithKey(key []byte) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithLogger sets the registry's logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Mount creates a registry and routes animalform.MountPath on e to it.
func Mount(e *echo.Echo, opts ...Option) *animalform.Registry {
	reg := newRegistry(opts)
	e.Any(animalform.MountPath+"*", echo.WrapHandler(reg.Handler()))
	return reg
}

// MountGroup creates a registry and routes animalform.MountPath on g to it.
// The group must not add a path prefix of its own.
func MountGroup(g *echo.Group, opts ...Option) *animalform.Registry {
	reg := newRegistry(opts)
	g.Any(animalform.MountPath+"*", echo.WrapHandler(reg.Handler()))
	return reg
}

func newRegistry(opts []Option) *animalform.Registry {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	key := o.key
	if key == nil {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("animalecho: failed to generate random key: %v", err))
		}
	}

	reg := animalform.NewRegistry(key)
	if o.logger != nil {
		reg.Logger = o.logger
	}
	return reg
}

// Render writes a templ component to the Echo response.
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}
