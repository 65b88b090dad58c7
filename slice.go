package conc

// intSlice is a monomorphic dynamic array of fiber ids. It exists because
// the scheduler's ready/waiting/free sets need only append and removal
// (swap-remove for waiting, order-preserving removal for ready), and
// nothing a generic container offers earns its complexity here.
type intSlice struct {
	items []int
}

// append adds id to the end of the slice.
func (s *intSlice) append(id int) {
	s.items = append(s.items, id)
}

// removeAt removes the element at index i by swapping it with the last
// element and truncating. Does not preserve order; the ready queue,
// whose round-robin fairness depends on order, uses removeAtOrdered
// instead.
func (s *intSlice) removeAt(i int) {
	n := len(s.items)
	s.items[i] = s.items[n-1]
	s.items = s.items[:n-1]
}

// removeAtOrdered removes the element at index i, shifting subsequent
// elements down by one to preserve relative order. Used for the ready
// queue, where round-robin fairness depends on the surviving fibers'
// relative order (spec.md §4.C: "not incrementing current_proc since
// the proc is removed, not advanced past").
func (s *intSlice) removeAtOrdered(i int) {
	s.items = append(s.items[:i], s.items[i+1:]...)
}

// removeValue removes the first occurrence of v, if present, by
// swap-remove. Reports whether a match was found.
func (s *intSlice) removeValue(v int) bool {
	for i, x := range s.items {
		if x == v {
			s.removeAt(i)
			return true
		}
	}
	return false
}

// popFront removes and returns items[0]. Callers must check len() > 0.
func (s *intSlice) popFront() int {
	v := s.items[0]
	s.removeAt(0)
	return v
}

func (s *intSlice) len() int {
	return len(s.items)
}

func (s *intSlice) at(i int) int {
	return s.items[i]
}

// pollReq mirrors the wait condition of a single waiting fiber, kept
// index-parallel with the waiting set: pollReq[i] always describes the
// wait condition of the fiber named by waiting.at(i).
type pollReq struct {
	fd       int
	readable bool
	writable bool
}

// pollSlice is a dynamic array of pollReq, supporting the same
// append/swap-remove discipline as intSlice, used in lockstep with the
// scheduler's waiting intSlice.
type pollSlice struct {
	items []pollReq
}

func (s *pollSlice) append(p pollReq) {
	s.items = append(s.items, p)
}

func (s *pollSlice) removeAt(i int) {
	n := len(s.items)
	s.items[i] = s.items[n-1]
	s.items = s.items[:n-1]
}

func (s *pollSlice) len() int {
	return len(s.items)
}

func (s *pollSlice) at(i int) pollReq {
	return s.items[i]
}
