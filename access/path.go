package access

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPath = errors.New("invalid path")

// Path is a parsed dotted field path.
type Path struct {
	Segments []string
}

func (p Path) String() string {
	return strings.Join(p.Segments, ".")
}

// Len returns the number of segments in the path.
func (p Path) Len() int {
	return len(p.Segments)
}

// ParsePath parses a field path string into a Path.
// Supports: "Field", "Nested.Field", "Nested.Map.Key".
func ParsePath(path string) (Path, error) {
	if path == "" {
		return Path{}, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	var segments []string

	for part := range strings.SplitSeq(path, ".") {
		if part == "" {
			return Path{}, fmt.Errorf("%w %q: empty segment", ErrInvalidPath, path)
		}

		if !IsValidIdent(part) {
			return Path{}, fmt.Errorf("%w %q: invalid identifier %q", ErrInvalidPath, path, part)
		}

		segments = append(segments, part)
	}

	return Path{Segments: segments}, nil
}

// MustParsePath is like ParsePath but panics on error.
func MustParsePath(path string) Path {
	p, err := ParsePath(path)
	if err != nil {
		panic(err)
	}

	return p
}

// IsValidIdent checks if a string is a valid Go identifier.
func IsValidIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			// First character must be letter or underscore
			if !isLetter(r) && r != '_' {
				return false
			}
		} else {
			// Subsequent characters can be letter, digit, or underscore
			if !isLetter(r) && !isDigit(r) && r != '_' {
				return false
			}
		}
	}

	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
