package grid

import tea "github.com/charmbracelet/bubbletea"

// KeyHandler receives key messages routed to a KeyScope. It returns true when
// it consumed the key, which keeps the key from reaching cell editors and the
// host.
type KeyHandler func(msg tea.KeyMsg) bool

// KeyScope is a set of key listeners acquired and released by the grid's
// controllers.
type KeyScope struct {
	next     uint64
	handlers []scopedHandler
}

type scopedHandler struct {
	id uint64
	fn KeyHandler
}

// Listen registers h and returns the func that releases it. Release is
// idempotent.
func (s *KeyScope) Listen(h KeyHandler) (release func()) {
	s.next++
	id := s.next
	s.handlers = append(s.handlers, scopedHandler{id: id, fn: h})
	return func() {
		for i, sh := range s.handlers {
			if sh.id == id {
				s.handlers = append(s.handlers[:i], s.handlers[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers msg to every listener in registration order and reports
// whether any of them consumed it.
func (s *KeyScope) Dispatch(msg tea.KeyMsg) bool {
	handled := false
	for _, sh := range append([]scopedHandler(nil), s.handlers...) {
		if sh.fn(msg) {
			handled = true
		}
	}
	return handled
}

// Len returns the number of registered listeners.
func (s *KeyScope) Len() int { return len(s.handlers) }
