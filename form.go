package animalform

import (
	"errors"
	"log/slog"
)

// Form is one instance of the animal creation form: the field state, the
// submission gate and the reset routine.
//
// A Form mirrors a single UI instance and is not safe for concurrent use.
type Form struct {
	state    FormState
	onCreate CreateFunc
	logger   *slog.Logger
	metrics  *Metrics
}

// NewForm creates an empty form that hands validated animals to onCreate.
// It panics if onCreate is nil.
func NewForm(onCreate CreateFunc, opts ...Option) *Form {
	o := newOptions(opts)
	return newForm(FormState{}, onCreate, o)
}

func newForm(state FormState, onCreate CreateFunc, o options) *Form {
	if onCreate == nil {
		panic("animalform: nil CreateFunc")
	}
	return &Form{
		state:    state,
		onCreate: onCreate,
		logger:   o.logger,
		metrics:  o.metrics,
	}
}

// State returns a copy of the current state.
func (f *Form) State() FormState {
	return f.state
}

// SetName stores the name input's current content.
func (f *Form) SetName(v string) {
	f.state.Name = v
	f.metrics.observeInput(FieldName)
}

// SetPictureURL stores the picture URL input's current content.
func (f *Form) SetPictureURL(v string) {
	f.state.PictureURL = v
	f.metrics.observeInput(FieldPictureURL)
}

// Input stores v in field. Nothing is validated while typing.
func (f *Form) Input(field Field, v string) error {
	if err := f.state.Set(field, v); err != nil {
		return err
	}
	f.metrics.observeInput(field)
	return nil
}

// Submit validates the current values. When they pass, the create callback is
// invoked once with the values unchanged and the form is reset. When they
// fail, the fields are left untouched and the failure is recorded in the
// state's Error and logged.
func (f *Form) Submit() (Animal, error) {
	animal, err := Validate(f.state)
	f.metrics.observeSubmission(outcomeOf(err))
	if err != nil {
		f.state.Error = FailureMessage(err)
		f.logFailure(err)
		return Animal{}, err
	}

	f.onCreate(animal.Name, animal.PictureURL)
	f.logger.Info("animal created",
		slog.String("name", animal.Name),
		slog.String("picture_url", animal.PictureURL))
	f.Reset()
	return animal, nil
}

// Reset clears both fields and any error message.
func (f *Form) Reset() {
	f.state.Reset()
}

func (f *Form) logFailure(err error) {
	var empty *EmptyFieldError
	if errors.As(err, &empty) {
		fields := make([]string, 0, len(empty.Fields))
		for _, fl := range empty.Fields {
			fields = append(fields, string(fl))
		}
		f.logger.Warn("name and picture URL are required", slog.Any("empty_fields", fields))
		return
	}
	f.logger.Warn("failed to validate input data",
		slog.String("name", f.state.Name),
		slog.Int("picture_url_length", utf16Len(f.state.PictureURL)),
		slog.String("error", err.Error()))
}
