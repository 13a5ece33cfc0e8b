// Package match scores how well a target struct field fits a source field.
//
// Names are compared after normalisation (NormalizeIdent, StripSuffix) with a
// Levenshtein similarity; types are graded with ScoreTypeCompatibility against
// an optional conversion lookup. RankCandidates combines both and
// CandidateList.HighConfidence picks an unambiguous winner.
package match
