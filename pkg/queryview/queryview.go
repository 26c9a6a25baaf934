package queryview

import "sync"

type State int

const (
	Idle State = iota
	Loading
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// View holds the latest result of a parameterised query. Every Begin bumps
// the generation counter; a Complete carrying a superseded generation is
// dropped, so only the most recently issued request can publish its result,
// regardless of completion order.
type View[T any] struct {
	mu    sync.Mutex
	gen   uint64
	state State
	data  T
	err   error
}

type Snapshot[T any] struct {
	State State
	Data  T
	Err   error
}

// Begin marks the view loading and returns the generation token the caller
// must present to Complete.
func (v *View[T]) Begin() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	v.state = Loading
	return v.gen
}

// Complete publishes a result. It reports false, leaving the view untouched,
// when gen is not the latest generation.
func (v *View[T]) Complete(gen uint64, data T, err error) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return false
	}
	if err != nil {
		var zero T
		v.data = zero
		v.err = err
		v.state = Error
		return true
	}
	v.data = data
	v.err = nil
	v.state = Success
	return true
}

// Reset returns the view to Idle and invalidates any in-flight generation.
func (v *View[T]) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	var zero T
	v.data = zero
	v.err = nil
	v.state = Idle
}

func (v *View[T]) Snapshot() Snapshot[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Snapshot[T]{State: v.state, Data: v.data, Err: v.err}
}
