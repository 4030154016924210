package form

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-authform/pkg/schema"
)

// ErrUnknownField is returned when a caller addresses a field the schema does
// not declare.
var ErrUnknownField = errors.New("form: unknown field")

// ErrSubmitterPanic wraps a panic raised by a Submitter. The panic is
// recovered and reported like any other submission error.
var ErrSubmitterPanic = errors.New("form: submitter panicked")

// TransitionHook observes phase transitions.
type TransitionHook func(from, to Phase)

// Option configures a Controller.
type Option func(*Controller)

// WithSubmitter sets the destination of valid payloads.
func WithSubmitter(submitter Submitter) Option {
	return func(c *Controller) {
		c.submitter = submitter
	}
}

// WithDispatch overrides how the submitter call is scheduled. The default runs
// it on a new goroutine; tests and terminal flows pass a synchronous dispatch.
func WithDispatch(dispatch func(func())) Option {
	return func(c *Controller) {
		if dispatch != nil {
			c.dispatch = dispatch
		}
	}
}

// Synchronous runs the dispatched function inline.
func Synchronous(fn func()) { fn() }

// WithTransitionHook registers an observer for phase transitions.
func WithTransitionHook(hook TransitionHook) Option {
	return func(c *Controller) {
		if hook != nil {
			c.hooks = append(c.hooks, hook)
		}
	}
}

// WithSubmitErrorHook receives errors returned by the submitter. Without a
// hook those errors are dropped.
func WithSubmitErrorHook(hook func(form string, err error)) Option {
	return func(c *Controller) {
		c.onSubmitError = hook
	}
}

// WithInitialState seeds field values. Undeclared keys are ignored.
func WithInitialState(state schema.FormState) Option {
	return func(c *Controller) {
		for key, value := range state {
			if _, ok := c.state[key]; ok {
				c.state[key] = value
			}
		}
	}
}

// Controller runs the validate-then-submit lifecycle for one mount.
type Controller struct {
	mu sync.Mutex

	schema   *schema.Schema
	state    schema.FormState
	errors   map[string]string
	phase    Phase
	last     Phase
	bindings []*Binding

	submitter     Submitter
	dispatch      func(func())
	hooks         []TransitionHook
	onSubmitError func(form string, err error)
}

// NewController mounts a controller for s with an empty FormState holding
// exactly the declared fields.
func NewController(s *schema.Schema, options ...Option) *Controller {
	if s == nil {
		s = &schema.Schema{}
	}
	c := &Controller{
		schema:   s,
		state:    s.Normalize(nil),
		phase:    PhaseIdle,
		last:     PhaseIdle,
		dispatch: func(fn func()) { go fn() },
	}
	for _, field := range s.Fields {
		c.bindings = append(c.bindings, &Binding{controller: c, field: field})
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Schema returns the schema the controller validates against.
func (c *Controller) Schema() *schema.Schema {
	return c.schema
}

// Bindings returns the field bindings in declaration order.
func (c *Controller) Bindings() []*Binding {
	out := make([]*Binding, len(c.bindings))
	copy(out, c.bindings)
	return out
}

// Binding returns the binding for name.
func (c *Controller) Binding(name string) (*Binding, error) {
	for _, binding := range c.bindings {
		if binding.Name() == name {
			return binding, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Set writes a field value through its binding.
func (c *Controller) Set(name, value string) error {
	binding, err := c.Binding(name)
	if err != nil {
		return err
	}
	binding.OnChange(value)
	return nil
}

// Fill writes every declared field present in state. Unknown keys are
// ignored.
func (c *Controller) Fill(state schema.FormState) {
	for _, binding := range c.bindings {
		if value, ok := state[binding.Name()]; ok {
			binding.OnChange(value)
		}
	}
}

// Snapshot returns a copy of the current FormState.
func (c *Controller) Snapshot() schema.FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Errors returns a copy of the messages attached by the last invalid
// submission.
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.errors) == 0 {
		return nil
	}
	out := make(map[string]string, len(c.errors))
	for key, value := range c.errors {
		out[key] = value
	}
	return out
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Outcome returns the terminal phase of the last submission (PhaseInvalid or
// PhaseSubmitted), or PhaseIdle when nothing was submitted yet.
func (c *Controller) Outcome() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Submit validates the current FormState snapshot. Invalid results attach
// their messages to the bindings; valid results clear them and hand the
// payload to the submitter. The controller is back in PhaseIdle when Submit
// returns.
func (c *Controller) Submit(ctx context.Context) schema.Result {
	c.transition(PhaseValidating)

	snapshot := c.Snapshot()
	result := c.schema.Validate(snapshot)

	if !result.Valid() {
		c.mu.Lock()
		c.errors = result.Errors
		c.mu.Unlock()
		c.transition(PhaseInvalid)
		c.transition(PhaseIdle)
		return result
	}

	c.mu.Lock()
	c.errors = nil
	c.mu.Unlock()
	c.transition(PhaseSubmitted)
	c.handOff(ctx, result.Payload.Clone())
	c.transition(PhaseIdle)
	return result
}

// Reset clears values and errors, returning the controller to its freshly
// mounted state.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.state = c.schema.Normalize(nil)
	c.errors = nil
	c.last = PhaseIdle
	c.mu.Unlock()
	for _, binding := range c.bindings {
		binding.visible = false
	}
}

func (c *Controller) handOff(ctx context.Context, payload schema.FormState) {
	submitter := c.submitter
	if submitter == nil {
		return
	}
	name := c.schema.Name
	onErr := c.onSubmitError
	// The hand-off outlives the mount, so it must not inherit its cancellation.
	ctx = context.WithoutCancel(ctx)
	c.dispatch(func() {
		if err := submit(ctx, submitter, name, payload); err != nil && onErr != nil {
			onErr(name, err)
		}
	})
}

func submit(ctx context.Context, submitter Submitter, name string, payload schema.FormState) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSubmitterPanic, r)
		}
	}()
	return submitter.Submit(ctx, name, payload)
}

func (c *Controller) transition(to Phase) {
	c.mu.Lock()
	from := c.phase
	c.phase = to
	if to == PhaseInvalid || to == PhaseSubmitted {
		c.last = to
	}
	hooks := c.hooks
	c.mu.Unlock()

	for _, hook := range hooks {
		hook(from, to)
	}
}

func (c *Controller) value(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state[name]
}

func (c *Controller) setValue(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.state[name]; !ok {
		return
	}
	c.state[name] = value
}

func (c *Controller) fieldError(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors[name]
}

func sortedKeys(state schema.FormState) []string {
	keys := make([]string, 0, len(state))
	for key := range state {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
