package terminal

// HistorySize is how many commands the terminal remembers.
const HistorySize = 5

// History is a fixed-size ring of past inputs. The oldest entry is evicted
// first once it is full.
type History struct {
	buf   [HistorySize]string
	start int
	n     int
}

// Add records an input.
func (h *History) Add(s string) {
	if h.n < HistorySize {
		h.buf[(h.start+h.n)%HistorySize] = s
		h.n++
		return
	}
	h.buf[h.start] = s
	h.start = (h.start + 1) % HistorySize
}

// Entries returns the remembered inputs, oldest first.
func (h *History) Entries() []string {
	out := make([]string, h.n)
	for i := range out {
		out[i] = h.buf[(h.start+i)%HistorySize]
	}
	return out
}

// Len is the number of remembered inputs.
func (h *History) Len() int { return h.n }

// Clear forgets everything.
func (h *History) Clear() { *h = History{} }
