package cascade

import "fmt"

// GuideStage names one functional-mode decomposition step: Bound is the
// full set of variables consumed at this stage (at most K of them),
// Shared is the subset of Bound that remains live for later stages
// instead of being eliminated. Letters in a guide string denote
// variables by the value (letter - 'a'/'A'), case marking shared-ness,
// mirroring ABC's Abc_TtGetGuide convention where the same letter value
// is read twice — once collecting the full bound set, once collecting
// only its uppercase (shared) members.
type GuideStage struct {
	Bound  []int
	Shared []int
}

// ParseGuide parses a guide string into its per-stage descriptors. An
// empty string yields no stages (pure automatic mode). Stage separators
// are literal digit characters appearing in increasing order starting
// at '0'; any text preceding the first digit is ignored, matching
// Abc_TtGetGuide scanning for the Iter-th digit rather than anchoring to
// the string start.
func ParseGuide(guide string) ([]GuideStage, error) {
	if guide == "" {
		return nil, nil
	}
	var stages []GuideStage
	stageIdx := 0
	i := 0
	n := len(guide)
	for i < n {
		c := guide[i]
		if c < '0' || c > '9' {
			i++
			continue
		}
		if c != byte('0'+stageIdx) {
			return nil, fmt.Errorf("%w: stage marker out of order at offset %d", ErrBadGuide, i)
		}
		i++
		start := i
		for i < n && !(guide[i] >= '0' && guide[i] <= '9') {
			i++
		}
		stage, err := parseGuideSegment(guide[start:i])
		if err != nil {
			return nil, err
		}
		stages = append(stages, stage)
		stageIdx++
	}
	return stages, nil
}

func parseGuideSegment(seg string) (GuideStage, error) {
	var st GuideStage
	seen := make(map[int]bool)
	for _, r := range seg {
		var v int
		var shared bool
		switch {
		case r >= 'a' && r <= 'z':
			v = int(r - 'a')
		case r >= 'A' && r <= 'Z':
			v = int(r - 'A')
			shared = true
		default:
			return GuideStage{}, fmt.Errorf("%w: invalid variable letter %q", ErrBadGuide, r)
		}
		if seen[v] {
			return GuideStage{}, fmt.Errorf("%w: variable %d repeated in one stage", ErrBadGuide, v)
		}
		seen[v] = true
		st.Bound = append(st.Bound, v)
		if shared {
			st.Shared = append(st.Shared, v)
		}
	}
	if len(st.Bound) == 0 {
		return GuideStage{}, fmt.Errorf("%w: empty stage segment", ErrBadGuide)
	}
	return st, nil
}
