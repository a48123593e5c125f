package animalform

import (
	"encoding/json"
	"net/http"
)

// IsHTMX returns true if the request originated from HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// TriggerName returns the name attribute of the element that triggered the
// request, or "" when HTMX did not send one.
func TriggerName(r *http.Request) string {
	return r.Header.Get("HX-Trigger-Name")
}

// buildTriggerHeader formats an HX-Trigger header value.
//
// An event without data is sent as its bare name. An event with data is
// sent as {"event": data}, which HTMX exposes as the event's detail.
func buildTriggerHeader(trigger string, data map[string]any) string {
	if trigger == "" {
		return ""
	}
	if data == nil {
		return trigger
	}

	payload, err := json.Marshal(map[string]any{trigger: data})
	if err != nil {
		return trigger
	}
	return string(payload)
}
