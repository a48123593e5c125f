package main

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/pthm/animalform"
)

const htmxScript = `https://unpkg.com/htmx.org@2.0.4`

// page is the demo page around the form.
func page(comp *animalform.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head>`+
			`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>Create an animal</title>`+
			`<script src="`+htmxScript+`"></script>`+
			`</head><body><main><h1>Create an animal</h1>`); err != nil {
			return err
		}
		if err := comp.Render(ctx, animalform.FormState{}).Render(ctx, w); err != nil {
			return err
		}
		if err := animalform.ToastContainer().Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}
