package access_test

import (
	"testing"

	"universal-mapper/access"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		path    string
		want    []string
		wantErr bool
	}{
		{"Name", []string{"Name"}, false},
		{"Home.City", []string{"Home", "City"}, false},
		{"_meta.v2", []string{"_meta", "v2"}, false},
		{"", nil, true},
		{".", nil, true},
		{"Home..City", nil, true},
		{"Home.", nil, true},
		{"1st", nil, true},
		{"Home.zip-code", nil, true},
		{"Items[]", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := access.ParsePath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParsePath(%q) = %v, want error", tt.path, got)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParsePath(%q) error = %v", tt.path, err)
			}

			if got.Len() != len(tt.want) {
				t.Fatalf("ParsePath(%q) = %v, want %v", tt.path, got.Segments, tt.want)
			}

			for i := range tt.want {
				if got.Segments[i] != tt.want[i] {
					t.Errorf("ParsePath(%q)[%d] = %q, want %q", tt.path, i, got.Segments[i], tt.want[i])
				}
			}

			if got.String() != tt.path {
				t.Errorf("String() = %q, want %q", got.String(), tt.path)
			}
		})
	}
}
