package match

import (
	"reflect"
	"strings"
	"unicode"
)

// suffixes are dropped from the end of a normalised field name when comparing
// loosely, longest first.
var suffixes = []string{"timestamp", "ids", "utc", "id", "at"}

// NormalizeIdent folds a Go field name to lower case without separators, so
// that CustomerID, customer_id and Customer-Id all become "customerid".
func NormalizeIdent(name string) string {
	return strings.Join(words(name), "")
}

// StripSuffix normalises name and removes one trailing suffix such as "id" or
// "at", keeping at least one character: CreatedAt becomes "created".
func StripSuffix(name string) string {
	norm := NormalizeIdent(name)
	for _, s := range suffixes {
		if len(norm) > len(s) && strings.HasSuffix(norm, s) {
			return norm[:len(norm)-len(s)]
		}
	}

	return norm
}

// words splits a field name into lower-case words at separators and at case
// boundaries. An acronym stays one word: "XMLParser" gives "xml", "parser".
func words(name string) []string {
	var (
		res []string
		cur []rune
	)

	flush := func() {
		if len(cur) > 0 {
			res = append(res, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		if r == '_' || r == '-' || r == ' ' {
			flush()
			continue
		}

		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if !unicode.IsUpper(prev) || nextLower {
				flush()
			}
		}

		cur = append(cur, r)
	}
	flush()

	return res
}

// Distance is the Levenshtein edit distance between a and b in bytes.
func Distance(a, b string) int {
	if len(a) > len(b) {
		a, b = b, a
	}

	row := make([]int, len(a)+1)
	for i := range row {
		row[i] = i
	}

	for j := 1; j <= len(b); j++ {
		diag := row[0]
		row[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			up := row[i]
			row[i] = min(row[i]+1, row[i-1]+1, diag+cost)
			diag = up
		}
	}

	return row[len(a)]
}

// Similarity maps Distance onto 0..1, where 1 means equal strings.
func Similarity(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Distance(a, b))/float64(longest)
}

// NameScore rates how alike the names of two struct fields are. Both the
// normalised names and their suffix-stripped forms are compared and the better
// score wins.
func NameScore(src, dst reflect.StructField) float64 {
	return max(
		Similarity(NormalizeIdent(src.Name), NormalizeIdent(dst.Name)),
		Similarity(StripSuffix(src.Name), StripSuffix(dst.Name)),
	)
}
