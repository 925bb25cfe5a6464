package grid

import tea "github.com/charmbracelet/bubbletea"

// flushLayoutMsg carries a deferred pinning flush back into Update.
type flushLayoutMsg struct {
	seq uint64
}

// layoutFlusher hands out deferred flushes. Only the most recently scheduled
// flush is honored, and none after close.
type layoutFlusher struct {
	seq    uint64
	closed bool
}

func (f *layoutFlusher) schedule() tea.Cmd {
	if f.closed {
		return nil
	}
	f.seq++
	seq := f.seq
	return func() tea.Msg { return flushLayoutMsg{seq: seq} }
}

func (f *layoutFlusher) accept(msg flushLayoutMsg) bool {
	return !f.closed && msg.seq == f.seq
}

func (f *layoutFlusher) close() { f.closed = true }
