package animalform

import "github.com/a-h/templ"

// actionSpec describes the HTMX wiring of one element to a component route.
// Every action is a POST so that HTMX includes the enclosing form's values,
// state included.
type actionSpec struct {
	path    string
	target  string
	swap    SwapMode
	trigger string
	sync    string
}

// attrs builds the hx-* attributes for the element.
func (a actionSpec) attrs() templ.Attributes {
	attrs := templ.Attributes{"hx-post": a.path}

	if a.target != "" {
		attrs["hx-target"] = a.target
	}
	swap := a.swap
	if swap == "" {
		swap = SwapOuter
	}
	attrs["hx-swap"] = string(swap)
	if a.trigger != "" {
		attrs["hx-trigger"] = a.trigger
	}
	if a.sync != "" {
		attrs["hx-sync"] = a.sync
	}
	return attrs
}
