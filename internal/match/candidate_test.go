package match

import (
	"reflect"
	"testing"
	"time"
)

type customerSource struct {
	CustomerID int64
}

type customerTarget struct {
	CustomerID   int64
	Customer_Id  int
	CustomerName string
	ID           int64
	unexported   int64
}

func fieldsOf(t reflect.Type) []reflect.StructField {
	res := make([]reflect.StructField, t.NumField())
	for i := range res {
		res[i] = t.Field(i)
	}

	return res
}

func field(name string, t reflect.Type) reflect.StructField {
	return reflect.StructField{Name: name, Type: t}
}

func TestRankCandidates(t *testing.T) {
	source := reflect.TypeFor[customerSource]().Field(0)

	candidates := RankCandidates(source, fieldsOf(reflect.TypeFor[customerTarget]()), nil)

	// Should have 4 candidates (unexported filtered out)
	if len(candidates) != 4 {
		t.Fatalf("Expected 4 candidates, got %d", len(candidates))
	}

	// Best match should be "CustomerID" (exact match)
	if candidates[0].TargetField.Name != "CustomerID" {
		t.Errorf("Expected best match to be 'CustomerID', got '%s'", candidates[0].TargetField.Name)
	}

	if candidates[0].CombinedScore < 0.9 {
		t.Errorf("Expected high score for exact match, got %f", candidates[0].CombinedScore)
	}

	// Second best should be "Customer_Id" (same name after normalization)
	if candidates[1].TargetField.Name != "Customer_Id" {
		t.Errorf("Expected second match to be 'Customer_Id', got '%s'", candidates[1].TargetField.Name)
	}

	convertible := func(src, dst reflect.Type) bool {
		return src == reflect.TypeFor[int64]() && dst == reflect.TypeFor[int]()
	}

	withConv := RankCandidates(source, fieldsOf(reflect.TypeFor[customerTarget]()), convertible)
	if withConv[1].TypeCompat != TypeConvertible {
		t.Errorf("Expected 'Customer_Id' to be convertible, got %s", withConv[1].TypeCompat)
	}

	if withConv[1].CombinedScore <= candidates[1].CombinedScore {
		t.Errorf("Expected registered conversion to raise the score")
	}
}

func TestRankCandidates_Determinism(t *testing.T) {
	source := field("Value", reflect.TypeFor[string]())
	targets := []reflect.StructField{
		field("ValueB", reflect.TypeFor[string]()),
		field("ValueA", reflect.TypeFor[string]()),
	}

	for range 10 {
		c := RankCandidates(source, targets, nil)
		if c[0].TargetField.Name != "ValueA" {
			t.Fatalf("Expected tie to resolve to 'ValueA', got '%s'", c[0].TargetField.Name)
		}
	}
}

func TestCandidateList_Helpers(t *testing.T) {
	c := CandidateList{{CombinedScore: 0.9}, {CombinedScore: 0.8}, {CombinedScore: 0.7}}

	if (CandidateList{}).Best() != nil {
		t.Errorf("Best() of empty list should be nil")
	}

	if got := len(c.AboveThreshold(0.75)); got != 2 {
		t.Errorf("AboveThreshold(0.75) len = %d, want 2", got)
	}

	if c.AboveThreshold(0.95).Best() != nil {
		t.Errorf("Expected no candidate above 0.95")
	}

	if !c.IsAmbiguous(0.15) {
		t.Errorf("Expected 0.9 vs 0.8 to be ambiguous at 0.15")
	}

	if c.IsAmbiguous(0.05) {
		t.Errorf("Expected 0.9 vs 0.8 not to be ambiguous at 0.05")
	}
}

func TestCandidateList_HighConfidence(t *testing.T) {
	tests := []struct {
		name    string
		cands   CandidateList
		wantNil bool
	}{
		{
			name: "high confidence",
			cands: CandidateList{
				{TargetField: field("A", nil), CombinedScore: 0.95, TypeCompat: TypeIdentical},
				{TargetField: field("B", nil), CombinedScore: 0.5, TypeCompat: TypeConvertible},
			},
		},
		{
			name: "too close",
			cands: CandidateList{
				{TargetField: field("A", nil), CombinedScore: 0.9, TypeCompat: TypeIdentical},
				{TargetField: field("B", nil), CombinedScore: 0.85, TypeCompat: TypeIdentical},
			},
			wantNil: true,
		},
		{
			name:    "below min score",
			cands:   CandidateList{{TargetField: field("A", nil), CombinedScore: 0.5, TypeCompat: TypeIdentical}},
			wantNil: true,
		},
		{
			name:    "incompatible type",
			cands:   CandidateList{{TargetField: field("A", nil), CombinedScore: 0.8, TypeCompat: TypeIncompatible}},
			wantNil: true,
		},
		{
			name:    "empty",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cands.HighConfidence(DefaultMinScore, DefaultMinGap)
			if (got == nil) != tt.wantNil {
				t.Errorf("HighConfidence() = %v, wantNil %v", got, tt.wantNil)
			}
		})
	}
}

func TestCalculateCombinedScore(t *testing.T) {
	tests := []struct {
		nameScore float64
		compat    TypeCompatibility
		want      float64
	}{
		{1.0, TypeIdentical, 1.0},
		{1.0, TypeIncompatible, 0.6},
		{0.0, TypeIdentical, 0.4},
		{0.5, TypeConvertible, 0.58},
	}

	for _, tt := range tests {
		got := calculateCombinedScore(tt.nameScore, tt.compat)
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("calculateCombinedScore(%v, %s) = %v, want %v", tt.nameScore, tt.compat, got, tt.want)
		}
	}
}

func TestSimilarTimestampNames(t *testing.T) {
	source := field("CreatedAt", reflect.TypeFor[time.Time]())
	targets := []reflect.StructField{
		field("Created", reflect.TypeFor[time.Time]()),
		field("Updated", reflect.TypeFor[time.Time]()),
	}

	best := RankCandidates(source, targets, nil).HighConfidence(DefaultMinScore, DefaultMinGap)
	if best == nil || best.TargetField.Name != "Created" {
		t.Errorf("Expected 'Created' to win with high confidence, got %v", best)
	}
}
