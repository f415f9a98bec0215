package interactkit

import (
	"log/slog"

	"github.com/felixgeelhaar/interactkit/internal/logging"
)

// StateEvent describes an instance touching a single state.
type StateEvent struct {
	Machine string
	State   string
	Event   Event
}

// TransitionEvent describes a completed transition between leaf states.
type TransitionEvent struct {
	Machine string
	From    string
	To      string
	Event   Event
}

// Hooks are optional callbacks for engine observability. They run
// synchronously on the dispatching goroutine.
type Hooks struct {
	OnStart      func(*StateEvent) // instance created; State is the initial leaf
	OnEnter      func(*StateEvent)
	OnExit       func(*StateEvent)
	OnTransition func(*TransitionEvent)
	OnIgnored    func(*StateEvent) // no registration on the ancestor chain
	OnDropped    func(*StateEvent) // a guard or computed transition declined; State is the scope
	OnComplete   func(*StateEvent) // State is the leaf left by Complete
}

// ComposeHooks returns hooks that call each of hooks in order.
func ComposeHooks(hooks ...Hooks) Hooks {
	return Hooks{
		OnStart:      composeState(hooks, func(h Hooks) func(*StateEvent) { return h.OnStart }),
		OnEnter:      composeState(hooks, func(h Hooks) func(*StateEvent) { return h.OnEnter }),
		OnExit:       composeState(hooks, func(h Hooks) func(*StateEvent) { return h.OnExit }),
		OnIgnored:    composeState(hooks, func(h Hooks) func(*StateEvent) { return h.OnIgnored }),
		OnDropped:    composeState(hooks, func(h Hooks) func(*StateEvent) { return h.OnDropped }),
		OnComplete:   composeState(hooks, func(h Hooks) func(*StateEvent) { return h.OnComplete }),
		OnTransition: composeTransition(hooks),
	}
}

func composeState(hooks []Hooks, pick func(Hooks) func(*StateEvent)) func(*StateEvent) {
	var fns []func(*StateEvent)
	for _, h := range hooks {
		if fn := pick(h); fn != nil {
			fns = append(fns, fn)
		}
	}
	switch len(fns) {
	case 0:
		return nil
	case 1:
		return fns[0]
	}
	return func(e *StateEvent) {
		for _, fn := range fns {
			fn(e)
		}
	}
}

func composeTransition(hooks []Hooks) func(*TransitionEvent) {
	var fns []func(*TransitionEvent)
	for _, h := range hooks {
		if h.OnTransition != nil {
			fns = append(fns, h.OnTransition)
		}
	}
	switch len(fns) {
	case 0:
		return nil
	case 1:
		return fns[0]
	}
	return func(e *TransitionEvent) {
		for _, fn := range fns {
			fn(e)
		}
	}
}

// Option configures an Instance
type Option func(*options)

type options struct {
	logger *slog.Logger
	hooks  []Hooks
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	return o
}

// WithLogger sets the structured logger. Transitions are logged at Debug.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHooks adds lifecycle hooks. Repeated use composes them in order.
func WithHooks(h Hooks) Option {
	return func(o *options) {
		o.hooks = append(o.hooks, h)
	}
}
