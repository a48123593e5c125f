package animalform

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// inputView describes one labelled text input.
type inputView struct {
	field     Field
	label     string
	value     string
	maxLength int
}

// formView renders the whole form. Submitting replaces the form in place;
// input events only refresh the state carrier (see stateCarrier).
func formView(c *Component, state FormState, encoded string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		submit := actionSpec{
			path:    c.actionPath(actionCreate),
			target:  "this",
			swap:    SwapOuter,
			trigger: "submit",
			sync:    "this:queue last",
		}

		if _, err := io.WriteString(w, `<form id="`+templ.EscapeString(c.id)+`" class="animal-create-form"`); err != nil {
			return err
		}
		if err := templ.RenderAttributes(ctx, w, submit.attrs()); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `>`+stateCarrier(c, encoded, false)); err != nil {
			return err
		}

		inputs := []inputView{
			{field: FieldName, label: "Animal Name", value: state.Name, maxLength: NameMaxLength},
			{field: FieldPictureURL, label: "Animal picture URL", value: state.PictureURL, maxLength: PictureURLMaxLength},
		}
		for _, in := range inputs {
			if err := renderInput(ctx, w, c, in); err != nil {
				return err
			}
		}

		if state.Error != "" {
			if _, err := io.WriteString(w, `<p class="animal-create-form__error" role="alert">`+
				templ.EscapeString(state.Error)+`</p>`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `<div class="animal-create-form__actions">`+
			`<button class="animal-create-form__button" type="submit">Create Animal</button>`+
			`</div></form>`)
		return err
	})
}

// stateCarrier is the hidden input holding the encoded state. With oob set it
// replaces the form's carrier through hx-swap-oob.
func stateCarrier(c *Component, encoded string, oob bool) string {
	s := `<input type="hidden" id="` + templ.EscapeString(c.stateID()) + `" name="` + stateParam +
		`" value="` + templ.EscapeString(encoded) + `"`
	if oob {
		s += ` hx-swap-oob="true"`
	}
	return s + `>`
}

// renderInput writes a controlled text input. Each input event posts the new
// content; the response updates the stored state without replacing the
// element, so focus and caret stay put. Requests queue on the form so each
// one carries the state produced by the previous.
func renderInput(ctx context.Context, w io.Writer, c *Component, in inputView) error {
	update := actionSpec{
		path:    c.actionPath(actionInput),
		swap:    SwapNone,
		trigger: "input changed",
		sync:    "closest form:queue last",
	}

	_, err := io.WriteString(w, `<label class="animal-create-form__label">`+templ.EscapeString(in.label)+
		`<input type="text" id="`+templ.EscapeString(c.inputID(in.field))+`" name="`+string(in.field)+
		`" value="`+templ.EscapeString(in.value)+`"`+
		` maxlength="`+strconv.Itoa(in.maxLength)+`" class="animal-create-form__input" autocomplete="off"`)
	if err != nil {
		return err
	}
	if err := templ.RenderAttributes(ctx, w, update.attrs()); err != nil {
		return err
	}
	_, err = io.WriteString(w, `></label>`)
	return err
}
