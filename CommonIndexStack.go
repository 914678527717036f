package phys2d

/// A growable LIFO stack of slot indices. Used for the contact pool free
/// list and for non-recursive tree traversals.
type IndexStack struct {
	indices []int
}

func NewIndexStack(capacity int) *IndexStack {
	return &IndexStack{
		indices: make([]int, 0, capacity),
	}
}

// Return the stack's length
func (s IndexStack) GetCount() int {
	return len(s.indices)
}

// Push a new index onto the stack
func (s *IndexStack) Push(index int) {
	s.indices = append(s.indices, index)
}

// Remove the top index from the stack and return it.
// If the stack is empty, return -1.
func (s *IndexStack) Pop() int {
	if len(s.indices) == 0 {
		return -1
	}

	index := s.indices[len(s.indices)-1]
	s.indices = s.indices[:len(s.indices)-1]
	return index
}
