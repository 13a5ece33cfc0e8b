package match

import (
	"math"
	"reflect"
	"slices"
	"testing"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"CustomerID", "customerid"},
		{"customer_id", "customerid"},
		{"Customer-Id", "customerid"},
		{"XMLParser", "xmlparser"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeIdent(tt.in); got != tt.want {
			t.Errorf("NormalizeIdent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"OrderID", []string{"order", "id"}},
		{"customerName", []string{"customer", "name"}},
		{"XMLParser", []string{"xml", "parser"}},
		{"getHTTPResponse", []string{"get", "http", "response"}},
		{"Line_Items", []string{"line", "items"}},
		{"", nil},
	}

	for _, tt := range tests {
		if got := words(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("words(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripSuffix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"CreatedAt", "created"},
		{"OrderIDs", "order"},
		{"UpdatedTimestamp", "updated"},
		{"ID", "id"},
		{"Name", "name"},
	}

	for _, tt := range tests {
		if got := StripSuffix(tt.in); got != tt.want {
			t.Errorf("StripSuffix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"email", "mail", 1},
		{"same", "same", 0},
	}

	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("", ""); got != 1 {
		t.Errorf("Similarity of empty strings = %v, want 1", got)
	}

	if got := Similarity("email", "mail"); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("Similarity(email, mail) = %v, want 0.8", got)
	}

	if got := Similarity("abc", "xyz"); got != 0 {
		t.Errorf("Similarity(abc, xyz) = %v, want 0", got)
	}
}

func TestNameScore(t *testing.T) {
	str := reflect.TypeFor[string]()

	if got := NameScore(field("customer_id", str), field("CustomerID", str)); got != 1 {
		t.Errorf("NameScore of equivalent names = %v, want 1", got)
	}

	if got := NameScore(field("CreatedAt", str), field("Created", str)); got != 1 {
		t.Errorf("NameScore with stripped suffix = %v, want 1", got)
	}

	if got := NameScore(field("Total", str), field("Email", str)); got >= 0.5 {
		t.Errorf("NameScore of unrelated names = %v, want < 0.5", got)
	}
}
