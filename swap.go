package animalform

// SwapMode is an hx-swap strategy for how response HTML replaces the target.
//
// See https://htmx.org/attributes/hx-swap/.
type SwapMode string

const (
	// SwapOuter replaces the entire target element (outerHTML). Submitting
	// re-renders the whole form this way.
	SwapOuter SwapMode = "outerHTML"

	// SwapNone discards the response body while OOB swaps still apply.
	// Input events use it so the element being typed into stays in place.
	SwapNone SwapMode = "none"
)
