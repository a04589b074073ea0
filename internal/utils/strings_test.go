package utils_test

import (
	"reflect"
	"testing"

	"github.com/floramart/storefront/internal/utils"
)

func TestSplitTrimmed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"stored pincode list", "411001, 411002,,411045", []string{"411001", "411002", "411045"}},
		{"single value", "411001", []string{"411001"}},
		{"empty string", "", nil},
		{"only separators", ", ,,  ,", nil},
		{"surrounding whitespace", "  a@x.com ,\tb@x.com\n", []string{"a@x.com", "b@x.com"}},
		{"order preserved", "c,a,b", []string{"c", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := utils.SplitTrimmed(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("SplitTrimmed(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "Red Roses", "red-roses"},
		{"already a slug", "red-roses", "red-roses"},
		{"punctuation collapsed", "Mother's Day Special!", "mother-s-day-special"},
		{"numbers preserved", "Bouquet No 5", "bouquet-no-5"},
		{"leading trailing junk", "  --Tulips-- ", "tulips"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
