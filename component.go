package animalform

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/a-h/templ"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// EventAnimalCreated is triggered after a successful submission. Its detail
// carries the created animal's name and pictureUrl.
const EventAnimalCreated = "animal:created"

const (
	actionInput  = "input"
	actionCreate = "create"
)

// stateParam is the form value that carries the encoded state.
const stateParam = "p"

type actionHandler func(ctx context.Context, state FormState, r *http.Request) Result

// Component serves the animal creation form over HTTP.
//
// The browser holds no authoritative state. Each keystroke posts the field's
// content to the input action, which stores it and sends back only the new
// encoded state, so the input being typed into is never replaced and keeps
// showing what is stored. Input requests queue on the form. The submit posts to the
// create action, which runs the validation gate and on success hands the
// animal to the CreateFunc and renders an empty form.
//
// Component keeps nothing between requests and is safe for concurrent use.
type Component struct {
	id        string
	name      string
	prefix    string
	sensitive bool
	onCreate  CreateFunc
	opts      options
	actions   map[string]actionHandler
	encoder   *Encoder
	onError   ErrorHandler
}

// New creates the form component. It must be added to a Registry before it
// can render or serve requests. It panics if onCreate is nil.
//
// The URL prefix is derived from the component name and the file:line that
// calls New, so separate instances get separate routes.
func New(onCreate CreateFunc, opts ...Option) *Component {
	if onCreate == nil {
		panic("animalform: nil CreateFunc")
	}
	o := newOptions(opts)
	id := o.name + "-" + componentHash(o.name, 1)
	o.logger = o.logger.With(slog.String("component", id))

	c := &Component{
		id:        id,
		name:      o.name,
		prefix:    MountPath + id,
		sensitive: o.sensitive,
		onCreate:  onCreate,
		opts:      o,
		onError:   DefaultErrorHandler,
	}
	c.actions = map[string]actionHandler{
		actionInput:  c.handleInput,
		actionCreate: c.handleCreate,
	}
	return c
}

// Name returns the component's name.
func (c *Component) Name() string {
	return c.name
}

// ID returns the component's element id, unique per instance.
func (c *Component) ID() string {
	return c.id
}

// Prefix returns the URL prefix all of the component's routes live under.
func (c *Component) Prefix() string {
	return c.prefix
}

// HXPrefix implements HXComponent.
func (c *Component) HXPrefix() string {
	return c.prefix
}

// IsSensitive reports whether state is encrypted rather than signed.
func (c *Component) IsSensitive() bool {
	return c.sensitive
}

func (c *Component) attach(enc *Encoder, onError ErrorHandler) {
	c.encoder = enc
	c.onError = onError
}

// Render renders the form for state.
func (c *Component) Render(_ context.Context, state FormState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		encoded, err := c.encodeState(state)
		if err != nil {
			return err
		}
		return formView(c, state, encoded).Render(ctx, w)
	})
}

// RefreshURL returns the GET URL that renders the form with state.
func (c *Component) RefreshURL(state FormState) (string, error) {
	encoded, err := c.encodeState(state)
	if err != nil {
		return "", err
	}
	return c.prefix + "/?" + stateParam + "=" + url.QueryEscape(encoded), nil
}

func (c *Component) actionPath(action string) string {
	return c.prefix + "/" + action
}

func (c *Component) stateID() string {
	return c.id + "-state"
}

func (c *Component) inputID(f Field) string {
	return c.id + "-" + string(f)
}

// HXServeHTTP implements HXComponent: it decodes the state, dispatches to the
// action named by the path and writes the result.
func (c *Component) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	action := strings.Trim(strings.TrimPrefix(r.URL.Path, c.prefix), "/")

	ctx, span := c.opts.tracer.Start(r.Context(), "animalform."+spanAction(action),
		trace.WithAttributes(
			attribute.String("animalform.component", c.id),
			attribute.String("http.request.method", r.Method),
		))
	defer span.End()
	r = r.WithContext(ctx)

	res := c.dispatch(ctx, action, r)
	if err := res.err; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	c.writeResult(ctx, w, r, res)
}

func (c *Component) dispatch(ctx context.Context, action string, r *http.Request) Result {
	if c.encoder == nil {
		return Err(FormState{}, ErrNotRegistered)
	}
	if err := r.ParseForm(); err != nil {
		return Err(FormState{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}

	state, err := c.decodeState(r)
	if err != nil {
		return Err(FormState{}, err)
	}

	if action == "" {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			return Err(state, ErrMethodNotAllowed)
		}
		return OK(state)
	}

	handler, ok := c.actions[action]
	if !ok {
		return Err(state, fmt.Errorf("%w: action %q", ErrNotFound, action))
	}
	if r.Method != http.MethodPost {
		return Err(state, ErrMethodNotAllowed)
	}
	return handler(ctx, state, r)
}

// handleInput stores the triggering input's content in the matching field.
// The browser already displays that content, so only the state is sent back.
func (c *Component) handleInput(ctx context.Context, state FormState, r *http.Request) Result {
	field := Field(TriggerName(r))
	form := c.form(state)
	if err := form.Input(field, r.PostFormValue(string(field))); err != nil {
		return Err(state, err)
	}
	return OK(form.State()).StateOnly()
}

// handleCreate runs the submission gate.
//
// The submitted inputs hold what the user sees, which runs ahead of the stored
// state while an input request is still queued, so they are applied first.
func (c *Component) handleCreate(ctx context.Context, state FormState, r *http.Request) Result {
	form := c.form(state)
	for _, f := range Fields {
		if vs, ok := r.PostForm[string(f)]; ok && len(vs) > 0 {
			if err := form.Input(f, vs[0]); err != nil {
				return Err(state, err)
			}
		}
	}

	animal, err := form.Submit()
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("animalform.outcome", outcomeOf(err)))
	if err != nil {
		return OK(form.State()).Flash(FlashError, form.State().Error)
	}

	return OK(form.State()).
		Flash(FlashSuccess, "Animal created").
		Trigger(EventAnimalCreated, map[string]any{
			"name":       animal.Name,
			"pictureUrl": animal.PictureURL,
		})
}

func (c *Component) form(state FormState) *Form {
	return newForm(state, c.onCreate, c.opts)
}

func (c *Component) writeResult(ctx context.Context, w http.ResponseWriter, r *http.Request, res Result) {
	if res.err != nil {
		c.onError(w, r, res.err)
		return
	}

	var buf bytes.Buffer
	if res.stateOnly {
		encoded, err := c.encodeState(res.state)
		if err != nil {
			c.onError(w, r, err)
			return
		}
		buf.WriteString(stateCarrier(c, encoded, true))
	} else if err := c.Render(ctx, res.state).Render(ctx, &buf); err != nil {
		c.onError(w, r, err)
		return
	}
	buf.WriteString(RenderFlashesOOB(res.flashes))

	if h := buildTriggerHeader(res.trigger, res.triggerData); h != "" {
		w.Header().Set("HX-Trigger", h)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(buf.Bytes())
	}
}

func (c *Component) encodeState(state FormState) (string, error) {
	if c.encoder == nil {
		return "", ErrNotRegistered
	}
	return c.encoder.Encode(state, c.sensitive)
}

// decodeState reads the state from the request. A request without state
// starts from the empty form.
func (c *Component) decodeState(r *http.Request) (FormState, error) {
	var state FormState
	encoded := r.Form.Get(stateParam)
	if encoded == "" {
		return state, nil
	}
	if err := c.encoder.Decode(encoded, c.sensitive, &state); err != nil {
		return FormState{}, wrapEncodingError(err)
	}
	return state, nil
}

func spanAction(action string) string {
	if action == "" {
		return "render"
	}
	return action
}

// componentHash derives 8 hex characters from the component name and the
// source location skip frames above the caller.
func componentHash(name string, skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	input := name
	if ok {
		input = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, name)
	}
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:4])
}
