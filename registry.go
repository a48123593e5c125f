package animalform

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
)

// MountPath is where Registry.Handler expects to be mounted.
const MountPath = "/_c/"

// Registry manages component registration and routing.
type Registry struct {
	mu         sync.RWMutex
	mux        *http.ServeMux
	encoder    *Encoder
	components map[string]HXComponent

	// Logger receives request rejections and handler errors.
	Logger *slog.Logger

	// OnError is called when a component request fails. Replace it to
	// customise error pages; the default is DefaultErrorHandler.
	OnError ErrorHandler
}

// NewRegistry creates a registry whose components share an encoder derived
// from key. It panics if the encoder cannot be built.
func NewRegistry(key []byte) *Registry {
	enc, err := NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("animalform: failed to create encoder: %v", err))
	}

	return &Registry{
		mux:        http.NewServeMux(),
		encoder:    enc,
		components: make(map[string]HXComponent),
		Logger:     slog.Default(),
		OnError:    DefaultErrorHandler,
	}
}

// Encoder returns the registry's encoder.
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// Add registers components. It panics on a prefix collision.
func (reg *Registry) Add(components ...HXComponent) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, comp := range components {
		prefix := comp.HXPrefix()
		if _, exists := reg.components[prefix]; exists {
			panic(fmt.Sprintf("animalform: prefix collision for %q", prefix))
		}
		if a, ok := comp.(attachable); ok {
			a.attach(reg.encoder, reg.handleError)
		}
		reg.components[prefix] = comp
		reg.mux.HandleFunc(prefix+"/", comp.HXServeHTTP)
	}
}

// Len returns the number of registered components.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.components)
}

// Handler returns the HTTP handler for component routes. Mount it at
// MountPath.
//
// Mutating requests must carry the HX-Request: true header that HTMX sends;
// cross-origin form posts cannot set it.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead && !IsHTMX(r) {
			reg.Logger.Warn("rejected non-HTMX mutating request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path))
			http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
			return
		}

		reg.mux.ServeHTTP(w, r)
	})
}

func (reg *Registry) handleError(w http.ResponseWriter, r *http.Request, err error) {
	reg.Logger.Error("component request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()))
	reg.OnError(w, r, err)
}

// DefaultErrorHandler maps errors to plain-text HTTP errors.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case IsNotFound(err):
		http.Error(w, "Not found", http.StatusNotFound)
	case IsBadRequest(err):
		http.Error(w, "Bad request", http.StatusBadRequest)
	case errors.Is(err, ErrMethodNotAllowed):
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	default:
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}
