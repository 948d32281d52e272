package domain

// SelectionRequest describes how many variants to design per locus and from
// how many parent families.
type SelectionRequest struct {
	Loci     []string
	N        int
	Families int

	// DivideEvenly allocates N/Families variants to each picked parent instead
	// of selecting N globally from the pooled families.
	DivideEvenly bool

	Seed uint64
}

// ChosenSet is an insertion-ordered set of selected variants keyed by the
// variant sequence. The first parent to claim a variant keeps it.
type ChosenSet struct {
	order []ScoredPair
	index map[string]int
}

func NewChosenSet() *ChosenSet {
	return &ChosenSet{index: map[string]int{}}
}

// Add inserts p unless its variant is already present. It reports whether p was added.
func (s *ChosenSet) Add(p ScoredPair) bool {
	if s.index == nil {
		s.index = map[string]int{}
	}
	if _, ok := s.index[p.Variant]; ok {
		return false
	}
	s.index[p.Variant] = len(s.order)
	s.order = append(s.order, p)
	return true
}

// Merge adds every member of other, keeping existing claims.
func (s *ChosenSet) Merge(other *ChosenSet) {
	if other == nil {
		return
	}
	for _, p := range other.order {
		s.Add(p)
	}
}

func (s *ChosenSet) Has(variant string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[variant]
	return ok
}

func (s *ChosenSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Items returns a copy of the members in insertion order.
func (s *ChosenSet) Items() []ScoredPair {
	if s == nil {
		return []ScoredPair{}
	}
	out := make([]ScoredPair, len(s.order))
	copy(out, s.order)
	return out
}
