package domain

// Bases is the target alphabet, in enumeration order.
const Bases = "ACGT"

// TargetLength is the fixed length of every parent and variant sequence.
const TargetLength = 20

// Antisense is the orientation marker of rows eligible for design.
const Antisense = "anti"

// Target is one row of the target table: a candidate parent sequence and its
// genomic annotation.
type Target struct {
	LocusTag string `json:"locus_tag"`
	Offset   int    `json:"offset"`
	Sequence string `json:"target"`
	PAM      string `json:"pam"`
	TransDir string `json:"transdir"`
}

// Pair is a single-mismatch variant of a parent (original) sequence.
// Locus, PAM and Offset are inherited from the parent.
type Pair struct {
	Variant  string `json:"variant"`
	Original string `json:"original"`
	LocusTag string `json:"locus_tag"`
	PAM      string `json:"pam"`
	Offset   int    `json:"offset"`

	// Position is the mismatched index; From/To are the original and substituted symbols.
	Position int  `json:"position"`
	From     byte `json:"-"`
	To       byte `json:"-"`
}

// IsIdentity reports whether the pair compares a sequence with itself.
func (p Pair) IsIdentity() bool {
	return p.Variant == p.Original
}

// Prediction is a scorer output. Valid is false for rows the scorer could not score.
type Prediction struct {
	Value float64
	Valid bool
}

// Scored returns a valid prediction holding v.
func Scored(v float64) Prediction {
	return Prediction{Value: v, Valid: true}
}

// ScoredPair joins a pair with its prediction.
type ScoredPair struct {
	Pair
	Prediction Prediction `json:"-"`
}

// Hamming returns the number of differing positions between two sequences of
// equal length, or -1 when the lengths differ.
func Hamming(a, b string) int {
	if len(a) != len(b) {
		return -1
	}
	d := 0
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}

// IsBase reports whether c belongs to the target alphabet.
func IsBase(c byte) bool {
	switch c {
	case 'A', 'C', 'G', 'T':
		return true
	}
	return false
}

// GCCount counts G and C symbols in seq.
func GCCount(seq string) int {
	n := 0
	for i := 0; i < len(seq); i++ {
		if seq[i] == 'G' || seq[i] == 'C' {
			n++
		}
	}
	return n
}
