package analysis

import (
	"reflect"
	"testing"
)

func TestRegexAnalyzerTokenizesAndLowercases(t *testing.T) {
	a := RegexAnalyzer{}
	got := a.Analyze("Hello, World! 42 apples.")
	want := []string{"hello", "world", "42", "apples"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}
