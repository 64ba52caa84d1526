package recognizer

// DefaultThreshold is the score from which a line counts as code.
const DefaultThreshold = 0.9

// Footprint is the set of detectors describing what code of a language looks like.
type Footprint interface {
	Detectors() []Detector
}

// CodeRecognizer scores text lines against a footprint.
// It is immutable and safe for concurrent use.
type CodeRecognizer struct {
	threshold float64
	detectors []Detector
}

func New(threshold float64, fp Footprint) *CodeRecognizer {
	return &CodeRecognizer{threshold: threshold, detectors: fp.Detectors()}
}

func (r *CodeRecognizer) Threshold() float64 {
	return r.threshold
}

// Recognition combines detector probabilities as independent evidence:
// 1 - Π(1 - p_i).
func (r *CodeRecognizer) Recognition(line string) float64 {
	miss := 1.0
	for _, d := range r.detectors {
		miss *= 1 - Recognition(d, line)
	}
	return 1 - miss
}

// MeetsCondition reports whether any of lines scores at or above the threshold.
func (r *CodeRecognizer) MeetsCondition(lines ...string) bool {
	for _, line := range lines {
		if r.Recognition(line) >= r.threshold {
			return true
		}
	}
	return false
}
