package animalform

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
)

// HXComponent is a component the Registry can route requests to.
//
// HXPrefix returns the unique URL prefix for the component instance.
// HXServeHTTP handles every request under that prefix.
type HXComponent interface {
	HXPrefix() string
	HXServeHTTP(w http.ResponseWriter, r *http.Request)
}

// Renderer produces a component's markup for a given state. Render must be
// pure: it reads state and writes HTML without side effects.
type Renderer interface {
	Render(ctx context.Context, state FormState) templ.Component
}

// ErrorHandler writes the response for a failed request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// attachable is implemented by components that need the registry's encoder
// and error handler. Registry.Add wires both.
type attachable interface {
	attach(enc *Encoder, onError ErrorHandler)
}
