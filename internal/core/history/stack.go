package history

// stack is a LIFO of operations. When bounded, pushing past the limit drops
// the oldest entry.
type stack struct {
	items []EditOperation
	limit int
}

func (s *stack) push(op EditOperation) (evicted bool) {
	s.items = append(s.items, op)
	if s.limit > 0 && len(s.items) > s.limit {
		excess := len(s.items) - s.limit
		copy(s.items, s.items[excess:])
		clear(s.items[len(s.items)-excess:])
		s.items = s.items[:len(s.items)-excess]
		return true
	}
	return false
}

func (s *stack) pop() (EditOperation, bool) {
	if len(s.items) == 0 {
		return EditOperation{}, false
	}
	top := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = EditOperation{}
	s.items = s.items[:len(s.items)-1]
	return top, true
}

func (s *stack) top() (*EditOperation, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	return &s.items[len(s.items)-1], true
}

func (s *stack) len() int { return len(s.items) }

func (s *stack) reset() {
	clear(s.items)
	s.items = s.items[:0]
}

func (s *stack) snapshot() []EditOperation {
	return append([]EditOperation(nil), s.items...)
}
