package syllabus

// Strand is one of the top-level syllabus divisions.
type Strand string

const (
	FunctionsGraphs       Strand = "functions-graphs"
	SequencesSeries       Strand = "sequences-series"
	Vectors               Strand = "vectors"
	ComplexNumbers        Strand = "complex-numbers"
	Calculus              Strand = "calculus"
	ProbabilityStatistics Strand = "probability-statistics"
)

// strands lists every strand in syllabus order.
var strands = []Strand{
	FunctionsGraphs,
	SequencesSeries,
	Vectors,
	ComplexNumbers,
	Calculus,
	ProbabilityStatistics,
}

var defaultLabels = map[Strand]string{
	FunctionsGraphs:       "Functions and Graphs",
	SequencesSeries:       "Sequences and Series",
	Vectors:               "Vectors",
	ComplexNumbers:        "Complex Numbers",
	Calculus:              "Calculus",
	ProbabilityStatistics: "Probability and Statistics",
}

// Strands returns all strands in syllabus order.
func Strands() []Strand {
	out := make([]Strand, len(strands))
	copy(out, strands)
	return out
}

// IsValid reports whether s belongs to the closed strand set.
func (s Strand) IsValid() bool {
	_, ok := defaultLabels[s]
	return ok
}

// String implements fmt.Stringer.
func (s Strand) String() string { return string(s) }

// DefaultLabel returns the built-in display label, or the raw key for an
// unknown strand.
func (s Strand) DefaultLabel() string {
	if label, ok := defaultLabels[s]; ok {
		return label
	}
	return string(s)
}
