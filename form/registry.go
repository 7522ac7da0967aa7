package form

import "sync"

// Focuser is a focus-capable input handle owned by the render layer.
type Focuser interface {
	Focus()
}

// FocusFunc adapts a plain function to Focuser.
type FocusFunc func()

// Focus calls f.
func (f FocusFunc) Focus() { f() }

// Registry maps field names to live input handles. Field components register
// on mount and call the returned function on unmount. The registry never owns
// the handles; it only looks them up.
type Registry struct {
	mu      sync.Mutex
	handles map[string]*handle
}

type handle struct {
	f Focuser
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handles: map[string]*handle{}}
}

// Register binds f to name, replacing any previous handle. The returned
// function removes the binding only if it has not been replaced since.
func (r *Registry) Register(name string, f Focuser) (unregister func()) {
	h := &handle{f: f}
	r.mu.Lock()
	r.handles[name] = h
	r.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			if r.handles[name] == h {
				delete(r.handles, name)
			}
			r.mu.Unlock()
		})
	}
}

// Lookup returns the handle registered for name.
func (r *Registry) Lookup(name string) (Focuser, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.handles[name]
	if !ok || h.f == nil {
		return nil, false
	}
	return h.f, true
}

// Len returns the number of registered handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}
