package state

import "sync"

// Navigator records a request to leave for the login flow. Only the first
// request runs fn; later ones are no-ops.
type Navigator struct {
	once sync.Once
	mu   sync.Mutex
	done bool
	fn   func()
}

func NewNavigator(fn func()) *Navigator {
	return &Navigator{fn: fn}
}

func (n *Navigator) ToLogin() {
	n.once.Do(func() {
		n.mu.Lock()
		n.done = true
		n.mu.Unlock()
		if n.fn != nil {
			n.fn()
		}
	})
}

// Requested reports whether ToLogin has been called
func (n *Navigator) Requested() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.done
}
