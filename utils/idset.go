package utils

// IDSet tracks product ids already shown. It is owned by a single session
// and is not safe for concurrent use.
type IDSet struct {
	seen map[int]struct{}
}

// NewIDSet creates an empty IDSet.
func NewIDSet() *IDSet {
	return &IDSet{seen: make(map[int]struct{})}
}

// Add returns true if the id was newly added, false if already present.
func (s *IDSet) Add(id int) bool {
	if _, exists := s.seen[id]; exists {
		return false
	}
	s.seen[id] = struct{}{}
	return true
}

// Contains returns true if the id has already been added.
func (s *IDSet) Contains(id int) bool {
	_, exists := s.seen[id]
	return exists
}

// Size returns the number of unique ids tracked.
func (s *IDSet) Size() int {
	return len(s.seen)
}

// Reset forgets every id.
func (s *IDSet) Reset() {
	clear(s.seen)
}
