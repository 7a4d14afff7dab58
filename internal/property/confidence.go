package property

// Confidence rates how trustworthy a single retrieved value is.
// It is carried alongside values for reporting; precedence between sources
// is decided by source hierarchy and query order, not by confidence.
type Confidence int

const (
	// Low is used for guessed values, e.g. a name taken from a directory.
	Low Confidence = iota
	// Middle is used for values derived indirectly from trusted data.
	Middle
	// High is used for values read verbatim from an authoritative source.
	High
)

// String returns the name of the confidence level.
func (c Confidence) String() string {
	switch c {
	case Low:
		return "low"
	case Middle:
		return "middle"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

// Rated is a value together with the confidence of the source in it.
type Rated struct {
	Confidence Confidence
	Value      string
}

// NewRated is a convenience constructor returning a pointer, matching the
// "no opinion = nil" convention of source retrieval.
func NewRated(c Confidence, value string) *Rated {
	return &Rated{Confidence: c, Value: value}
}
