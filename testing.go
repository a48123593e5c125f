package animalform

import (
	"bytes"
	"context"
	"encoding/json"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// TestResult holds a rendered response for assertions in tests.
type TestResult struct {
	HTML            string
	StatusCode      int
	Headers         http.Header
	TriggeredEvents []string
	Flashes         []Flash
}

// TestRender renders a component for state without going through HTTP.
//
//	result, err := animalform.TestRender(comp, animalform.FormState{Name: "Rex"})
//	if result.InputValue("name") != "Rex" { ... }
func TestRender(comp Renderer, state FormState) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), comp, state)
}

// TestRenderWithContext is TestRender with a caller-supplied context.
func TestRenderWithContext(ctx context.Context, comp Renderer, state FormState) (*TestResult, error) {
	var buf bytes.Buffer
	if err := comp.Render(ctx, state).Render(ctx, &buf); err != nil {
		return nil, err
	}

	return &TestResult{
		HTML:       buf.String(),
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}, nil
}

// TestGet simulates a GET request against an HXComponent.
func TestGet(comp HXComponent, url string) (*TestResult, error) {
	return NewTestRequest(http.MethodGet, url).Execute(comp)
}

// TestPost simulates an HTMX POST with form data against an HXComponent.
//
//	result, err := animalform.TestPost(comp, comp.Prefix()+"/create", map[string]string{
//	    "name": "Rex",
//	    "pictureUrl": "http://example.com/rex.png",
//	})
func TestPost(comp HXComponent, url string, formData map[string]string) (*TestResult, error) {
	return NewTestRequest(http.MethodPost, url).WithFormValues(formData).Execute(comp)
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// InputValue returns the unescaped value attribute of the input named name,
// or "" if there is no such input.
func (r *TestResult) InputValue(name string) string {
	marker := `name="` + name + `" value="`
	start := strings.Index(r.HTML, marker)
	if start == -1 {
		return ""
	}
	start += len(marker)
	end := strings.IndexByte(r.HTML[start:], '"')
	if end == -1 {
		return ""
	}
	return html.UnescapeString(r.HTML[start : start+end])
}

// State returns the encoded state carried by the rendered form.
func (r *TestResult) State() string {
	return r.InputValue(stateParam)
}

// HasEvent checks if an event was triggered.
func (r *TestResult) HasEvent(event string) bool {
	for _, e := range r.TriggeredEvents {
		if e == event {
			return true
		}
	}
	return false
}

// HasFlash checks if a flash message was set with the given level and message.
func (r *TestResult) HasFlash(level, message string) bool {
	for _, f := range r.Flashes {
		if f.Level == level && f.Message == message {
			return true
		}
	}
	return false
}

// HasFlashLevel checks if any flash message was set with the given level.
func (r *TestResult) HasFlashLevel(level string) bool {
	for _, f := range r.Flashes {
		if f.Level == level {
			return true
		}
	}
	return false
}

// IsOK checks if the status code is 200.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus checks if the status code matches.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// GetHeader returns the value of a header.
func (r *TestResult) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// TestRequestBuilder builds a request for Execute.
//
//	result, err := animalform.NewTestRequest(http.MethodPost, comp.Prefix()+"/input").
//	    WithFormData("name", "Re").
//	    WithHeader("HX-Trigger-Name", "name").
//	    Execute(comp)
type TestRequestBuilder struct {
	method   string
	url      string
	formData url.Values
	headers  map[string]string
	ctx      context.Context
	noHTMX   bool
}

// NewTestRequest creates a new test request builder. Requests carry the
// HX-Request header unless WithoutHTMX is called.
func NewTestRequest(method, url string) *TestRequestBuilder {
	return &TestRequestBuilder{
		method:   method,
		url:      url,
		formData: make(map[string][]string),
		headers:  make(map[string]string),
		ctx:      context.Background(),
	}
}

// WithFormData adds a form value to the request.
func (b *TestRequestBuilder) WithFormData(key, value string) *TestRequestBuilder {
	b.formData.Set(key, value)
	return b
}

// WithFormValues adds multiple form values to the request.
func (b *TestRequestBuilder) WithFormValues(data map[string]string) *TestRequestBuilder {
	for k, v := range data {
		b.formData.Set(k, v)
	}
	return b
}

// WithHeader adds a header to the request.
func (b *TestRequestBuilder) WithHeader(key, value string) *TestRequestBuilder {
	b.headers[key] = value
	return b
}

// WithContext sets the context for the request.
func (b *TestRequestBuilder) WithContext(ctx context.Context) *TestRequestBuilder {
	b.ctx = ctx
	return b
}

// WithoutHTMX drops the HX-Request header, as a plain browser request would.
func (b *TestRequestBuilder) WithoutHTMX() *TestRequestBuilder {
	b.noHTMX = true
	return b
}

// Build returns the request without executing it.
func (b *TestRequestBuilder) Build() *http.Request {
	body := strings.NewReader(b.formData.Encode())
	req := httptest.NewRequest(b.method, b.url, body)
	req = req.WithContext(b.ctx)

	if !b.noHTMX {
		req.Header.Set("HX-Request", "true")
	}
	if len(b.formData) > 0 {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range b.headers {
		req.Header.Set(k, v)
	}
	return req
}

// Execute runs the request against comp and records the response.
func (b *TestRequestBuilder) Execute(comp HXComponent) (*TestResult, error) {
	return b.Serve(http.HandlerFunc(comp.HXServeHTTP))
}

// Serve runs the request against any handler, such as Registry.Handler().
func (b *TestRequestBuilder) Serve(h http.Handler) (*TestResult, error) {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, b.Build())

	result := &TestResult{
		HTML:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Header(),
	}
	if trigger := rec.Header().Get("HX-Trigger"); trigger != "" {
		result.TriggeredEvents = parseTriggerHeader(trigger)
	}
	result.Flashes = parseFlashesFromHTML(result.HTML)

	return result, nil
}

// parseTriggerHeader returns the event names in an HX-Trigger header value,
// which is either a comma-separated list or a JSON object keyed by event.
// Names from a JSON object are sorted.
func parseTriggerHeader(trigger string) []string {
	trigger = strings.TrimSpace(trigger)
	if trigger == "" {
		return nil
	}

	if strings.HasPrefix(trigger, "{") {
		var payload map[string]json.RawMessage
		if err := json.Unmarshal([]byte(trigger), &payload); err != nil {
			return nil
		}
		events := make([]string, 0, len(payload))
		for name := range payload {
			events = append(events, name)
		}
		sort.Strings(events)
		return events
	}

	var events []string
	for _, p := range strings.Split(trigger, ",") {
		if p = strings.TrimSpace(p); p != "" {
			events = append(events, p)
		}
	}
	return events
}

// toastPattern matches one toast written by RenderFlashesOOB.
var toastPattern = regexp.MustCompile(`<div class="toast toast-([^"]*)"[^>]*>([^<]*)</div>`)

// parseFlashesFromHTML extracts flash messages rendered by RenderFlashesOOB.
func parseFlashesFromHTML(body string) []Flash {
	var flashes []Flash
	for _, m := range toastPattern.FindAllStringSubmatch(body, -1) {
		flashes = append(flashes, Flash{
			Level:   html.UnescapeString(m[1]),
			Message: html.UnescapeString(m[2]),
		})
	}
	return flashes
}
