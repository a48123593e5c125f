// Package animalform provides a server-rendered form for creating animals,
// built with Templ markup and HTMX.
//
// The form collects an animal's name and a picture URL, validates them when
// the user submits, and hands the validated values to a callback supplied by
// the embedding application.
//
// # Form and state
//
// FormState holds the two field values and the message from the last failed
// submission. Form wraps a state with the three operations the form supports:
//
//	f := animalform.NewForm(func(name, pictureURL string) {
//	    zoo.Add(name, pictureURL)
//	})
//	f.SetName("Rex")
//	f.SetPictureURL("http://example.com/rex.png")
//	if _, err := f.Submit(); err != nil {
//	    // the fields keep their values; f.State().Error describes the failure
//	}
//
// Typing stores values exactly as entered. Nothing is validated until Submit.
//
// # Validation
//
// Validate gates the callback behind two layers, in order:
//   - presence: both fields must be non-empty after trimming whitespace
//     (*EmptyFieldError, matched by ErrEmptyField);
//   - schema: the name must consist only of ASCII letters and whitespace,
//     and the picture URL must be at most 200 characters
//     (*SchemaError, matched by ErrSchema).
//
// The picture URL is not checked for well-formedness, and an empty picture
// URL is rejected by the presence check alone.
//
// # Serving the form
//
// Component serves the form over HTTP. Each keystroke posts the input's
// content to the component, which stores it and swaps in the new encoded
// state out of band, leaving the input itself in place. Submitting re-renders
// the whole form from the stored state. State travels between
// requests inside the page, signed by default or encrypted with Sensitive().
//
//	comp := animalform.New(onCreate, animalform.WithLogger(logger))
//	reg := animalform.NewRegistry(key)
//	reg.Add(comp)
//	mux.Handle(animalform.MountPath, reg.Handler())
//
// In a page template, render the form with comp.Render(ctx, FormState{}) and
// include ToastContainer() once for flash messages. A successful submission
// triggers EventAnimalCreated with the created animal as its detail.
//
// Mutating requests must carry the HX-Request header that HTMX sends, which
// cross-origin form posts cannot forge.
package animalform
