package animalform

// Result is returned from action handlers to describe the response: the
// state to re-render, toast notifications and events.
//
//	// Re-render the form with the new state
//	return OK(state)
//
//	// Re-render and notify listeners
//	return OK(state).Flash(FlashSuccess, "Animal created").Trigger(EventAnimalCreated)
//
//	// Refresh only the state carried by the page
//	return OK(state).StateOnly()
//
//	// Hand a transport error to the registry's OnError
//	return Err(state, err)
type Result struct {
	state       FormState
	err         error
	flashes     []Flash
	trigger     string
	triggerData map[string]any
	stateOnly   bool
}

// OK creates a result that re-renders the form with state.
func OK(state FormState) Result {
	return Result{state: state}
}

// Err creates a result that is passed to the error handler instead of being
// rendered. Validation failures are not errors in this sense; they re-render
// through OK with the state's Error set.
func Err(state FormState, err error) Result {
	return Result{state: state, err: err}
}

// Flash adds a toast notification. Multiple flashes can be chained.
func (r Result) Flash(level, message string) Result {
	r.flashes = append(r.flashes, Flash{Level: level, Message: message})
	return r
}

// Trigger emits an event through the HX-Trigger header. When data is given,
// listeners receive it as the event detail.
func (r Result) Trigger(event string, data ...map[string]any) Result {
	r.trigger = event
	if len(data) > 0 {
		r.triggerData = data[0]
	}
	return r
}

// StateOnly renders just the encoded state as an out-of-band swap, leaving
// the visible inputs untouched.
func (r Result) StateOnly() Result {
	r.stateOnly = true
	return r
}

// State returns the state that will be rendered.
func (r Result) State() FormState {
	return r.state
}

// Error returns the error passed to Err, if any.
func (r Result) Error() error {
	return r.err
}

// Flashes returns the queued toast notifications.
func (r Result) Flashes() []Flash {
	return r.flashes
}

// TriggerEvent returns the event name and its data.
func (r Result) TriggerEvent() (string, map[string]any) {
	return r.trigger, r.triggerData
}

// IsStateOnly reports whether StateOnly was called.
func (r Result) IsStateOnly() bool {
	return r.stateOnly
}
