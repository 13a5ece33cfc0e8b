package match

import (
	"cmp"
	"reflect"
	"slices"
)

// Thresholds used by the similarity matcher when the caller has no opinion.
const (
	DefaultMinScore = 0.7
	DefaultMinGap   = 0.15
)

// Candidate is one target field considered for a source field.
type Candidate struct {
	SourceField reflect.StructField
	TargetField reflect.StructField

	NameScore     float64 // 0..1, see NameScore
	TypeCompat    TypeCompatibility
	CombinedScore float64
}

// CandidateList is ordered best first.
type CandidateList []Candidate

// RankCandidates scores every exported target field against source. Ties are
// broken by target field name so the order is stable across runs.
func RankCandidates(source reflect.StructField, targets []reflect.StructField, convertible Convertible) CandidateList {
	res := make(CandidateList, 0, len(targets))

	for _, target := range targets {
		if !target.IsExported() {
			continue
		}

		name := NameScore(source, target)
		compat := ScoreTypeCompatibility(source.Type, target.Type, convertible)

		res = append(res, Candidate{
			SourceField:   source,
			TargetField:   target,
			NameScore:     name,
			TypeCompat:    compat,
			CombinedScore: calculateCombinedScore(name, compat),
		})
	}

	slices.SortFunc(res, func(a, b Candidate) int {
		return cmp.Or(
			cmp.Compare(b.CombinedScore, a.CombinedScore),
			cmp.Compare(a.TargetField.Name, b.TargetField.Name),
		)
	})

	return res
}

// calculateCombinedScore weighs the name at 60% and the type at 40%.
func calculateCombinedScore(nameScore float64, typeCompat TypeCompatibility) float64 {
	var typeScore float64

	switch typeCompat {
	case TypeIdentical:
		typeScore = 1.0
	case TypeAssignable:
		typeScore = 0.9
	case TypeConvertible:
		typeScore = 0.7
	case TypeNeedsTransform:
		typeScore = 0.4
	default:
		typeScore = 0
	}

	return 0.6*nameScore + 0.4*typeScore
}

// Best returns the first candidate, or nil for an empty list.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// IsAmbiguous reports whether the runner-up is closer than gap to the leader.
func (c CandidateList) IsAmbiguous(gap float64) bool {
	return len(c) > 1 && c[0].CombinedScore-c[1].CombinedScore < gap
}

// AboveThreshold keeps the candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var res CandidateList

	for _, cand := range c {
		if cand.CombinedScore >= threshold {
			res = append(res, cand)
		}
	}

	return res
}

// HighConfidence returns the leader if it reaches minScore, has a type the
// mapper can handle, and beats the runner-up by at least minGap.
func (c CandidateList) HighConfidence(minScore, minGap float64) *Candidate {
	best := c.AboveThreshold(minScore).Best()
	if best == nil || best.TypeCompat < TypeNeedsTransform {
		return nil
	}

	if c.IsAmbiguous(minGap) {
		return nil
	}

	return best
}
