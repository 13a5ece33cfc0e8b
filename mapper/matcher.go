package mapper

import (
	"reflect"
	"strings"

	"universal-mapper/access"
	"universal-mapper/convert"
	"universal-mapper/internal/match"
)

// Matcher finds the field of struct type dst that source field src maps onto.
type Matcher func(dst reflect.Type, src reflect.StructField) (reflect.StructField, bool)

// ExactNames matches fields with the same name.
func ExactNames(dst reflect.Type, src reflect.StructField) (reflect.StructField, bool) {
	return fieldByName(dst, src.Name)
}

// FuzzyNames matches fields whose names normalise to the same identifier, so
// that CustomerID, customer_id and Customer_Id are the same field. An exact
// name always wins. Failing that, names are compared with suffixes such as ID
// or At stripped, and the match is taken only when a single target fits.
func FuzzyNames(dst reflect.Type, src reflect.StructField) (reflect.StructField, bool) {
	if df, ok := fieldByName(dst, src.Name); ok {
		return df, true
	}

	fields := access.Fields(dst)

	want := match.NormalizeIdent(src.Name)
	for _, df := range fields {
		if match.NormalizeIdent(df.Name) == want {
			return df, true
		}
	}

	var (
		found reflect.StructField
		hits  int
	)

	stripped := match.StripSuffix(src.Name)
	for _, df := range fields {
		if match.StripSuffix(df.Name) == stripped {
			found = df
			hits++
		}
	}

	return found, hits == 1
}

// TaggedNames matches by struct tag: the target tag naming the source field,
// equal tag values on both sides, the source tag naming the target field, and
// finally the exact name.
func TaggedNames(tag string) Matcher {
	return func(dst reflect.Type, src reflect.StructField) (reflect.StructField, bool) {
		fields := access.Fields(dst)
		srcTag := tagName(src, tag)

		for _, df := range fields {
			if tagName(df, tag) == src.Name {
				return df, true
			}
		}

		if srcTag != "" {
			for _, df := range fields {
				if tagName(df, tag) == srcTag {
					return df, true
				}
			}

			if df, ok := fieldByName(dst, srcTag); ok {
				return df, true
			}
		}

		return fieldByName(dst, src.Name)
	}
}

// SimilarNames ranks target fields by name similarity and type compatibility
// and accepts the best one only when it scores at least minScore and clearly
// beats the runner-up. A nil registry means convert.Default().
func SimilarNames(registry *convert.Registry, minScore float64) Matcher {
	if registry == nil {
		registry = convert.Default()
	}

	return func(dst reflect.Type, src reflect.StructField) (reflect.StructField, bool) {
		if df, ok := fieldByName(dst, src.Name); ok {
			return df, true
		}

		best := match.RankCandidates(src, access.Fields(dst), registry.CanConvert).
			HighConfidence(minScore, match.DefaultMinGap)
		if best == nil {
			return reflect.StructField{}, false
		}

		return best.TargetField, true
	}
}

// fieldByName looks up an exported field declared directly on t. Promoted
// fields are not considered.
func fieldByName(t reflect.Type, name string) (reflect.StructField, bool) {
	for _, df := range access.Fields(t) {
		if df.Name == name {
			return df, true
		}
	}

	return reflect.StructField{}, false
}

func tagName(f reflect.StructField, tag string) string {
	value := f.Tag.Get(tag)
	if value == "" || value == "-" {
		return ""
	}
	// trim options
	if idx := strings.IndexByte(value, ','); idx >= 0 {
		value = value[:idx]
	}
	return value
}
