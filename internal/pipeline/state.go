package pipeline

import (
	"fmt"
	"maps"
	"slices"
)

// Key names a state entry and fixes the type of its value. Names are dotted
// paths such as "nextVersionNumber.semver".
type Key[T any] struct {
	name string
}

// NewKey declares a key.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

func (k Key[T]) Name() string { return k.name }

// State is the value bag shared by the steps of one run. It is not safe for
// concurrent use; steps run sequentially.
type State struct {
	values map[string]any
}

// NewState returns an empty state.
func NewState() *State {
	return &State{values: make(map[string]any)}
}

// Set stores v under k, replacing any previous value.
func Set[T any](st *State, k Key[T], v T) {
	st.values[k.name] = v
}

// Lookup returns the value under k and whether it was set.
func Lookup[T any](st *State, k Key[T]) (T, bool) {
	v, err := Get(st, k)
	return v, err == nil
}

// Get returns the value under k. A missing key is ErrMissingPrerequisite.
func Get[T any](st *State, k Key[T]) (T, error) {
	var zero T
	raw, ok := st.values[k.name]
	if !ok {
		return zero, ErrMissingPrerequisite.WithContext("key", k.name)
	}
	v, ok := raw.(T)
	if !ok {
		return zero, ErrStateType.WithContext("key", k.name).WithContext("type", fmt.Sprintf("%T", raw))
	}
	return v, nil
}

// Has reports whether name is set.
func (st *State) Has(name string) bool {
	_, ok := st.values[name]
	return ok
}

// Keys returns the set key names in sorted order.
func (st *State) Keys() []string {
	return slices.Sorted(maps.Keys(st.values))
}

// Arg is a step parameter: either a literal or a value read from state.
type Arg[T any] interface {
	Resolve(st *State) (T, error)
}

// Literal is an Arg fixed at registration time.
type Literal[T any] struct{ Value T }

func (l Literal[T]) Resolve(*State) (T, error) { return l.Value, nil }

// Deferred is an Arg read from state immediately before the step runs, so a
// step can be registered before the value it needs exists.
type Deferred[T any] struct{ Key Key[T] }

func (d Deferred[T]) Resolve(st *State) (T, error) { return Get(st, d.Key) }

// Defer returns a Deferred for k.
func Defer[T any](k Key[T]) Deferred[T] { return Deferred[T]{Key: k} }
