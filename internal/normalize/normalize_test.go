package normalize

import (
	"reflect"
	"testing"
)

func TestNormalize_Basic(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"simple", "a b a c", []string{"a", "b", "a", "c"}},
		{"case", "Alpha Beta Gamma", []string{"alpha", "beta", "gamma"}},
		{"collapses whitespace", "quick   brown\tfox", []string{"quick", "brown", "fox"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.text, nil)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Normalize(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestNormalize_Stopwords(t *testing.T) {
	stop := NewStopSet([]string{"the", "a", "is"})

	got := Normalize("the quick brown fox is fast", stop)
	want := []string{"quick", "brown", "fox", "fast"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNormalize_Punctuation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"decimal preserved", "price is 9.99", []string{"price", "is", "9.99"}},
		{"thousands comma preserved", "population 2,000", []string{"population", "2,000"}},
		{"hyphen preserved between alnum", "well-known fact", []string{"well-known", "fact"}},
		{"trailing punctuation stripped", "hello, world!", []string{"hello", "world"}},
		{"abbreviation period dropped", "the U.S. is big", []string{"the", "us", "is", "big"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.text, nil)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Normalize(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestNormalize_NGram(t *testing.T) {
	cfg := Config{NGram: 2}
	got := NormalizeWithConfig("quick brown fox", nil, cfg)
	want := []string{"quick brown", "brown fox"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNormalize_Stemming(t *testing.T) {
	cfg := Config{NGram: 1, EnableStemming: true}
	got := NormalizeWithConfig("running runs", nil, cfg)

	if len(got) != 2 {
		t.Fatalf("expected 2 terms, got %v", got)
	}
	if got[0] == "running" {
		t.Errorf("expected stemmed form, got unstemmed %q", got[0])
	}
}

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"123", true},
		{"abc", false},
		{"12a", false},
		{"", false},
	}

	for _, tc := range tests {
		if got := IsNumeric(tc.text); got != tc.want {
			t.Errorf("IsNumeric(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
