package docindex

import (
	"math"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"lowercases and splits", "Panic Attacks", []string{"panic", "attacks"}},
		{"drops stop words", "the fear of a test", []string{"fear", "test"}},
		{"drops single characters", "a b breathing", []string{"breathing"}},
		{"empty input", "", nil},
		{"punctuation is a separator", "heart-racing, sweaty palms!", []string{"heart", "racing", "sweaty", "palms"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestVectorizerFitTransform(t *testing.T) {
	corpus := []string{
		"panic attack breathing exercise",
		"sleep routine before bed",
		"breathing exercise for stress",
	}

	v := NewVectorizer(0)
	v.Fit(corpus)

	if v.VocabularySize() == 0 {
		t.Fatal("expected non-empty vocabulary")
	}

	// Bigrams participate in the vocabulary.
	if _, ok := v.vocabulary["breathing exercise"]; !ok {
		t.Error("expected bigram \"breathing exercise\" in vocabulary")
	}

	// Transform is unit length for non-zero vectors.
	vec := v.Transform("panic attack breathing")
	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if math.Abs(norm-1.0) > 1e-9 {
		t.Errorf("transformed vector norm^2 = %f, want 1", norm)
	}

	// Out-of-vocabulary text yields a zero vector.
	zero := v.Transform("zzz qqq")
	for _, x := range zero {
		if x != 0 {
			t.Fatal("expected zero vector for out-of-vocabulary text")
		}
	}
}

func TestVectorizerVocabularyCap(t *testing.T) {
	corpus := []string{
		"alpha beta gamma delta epsilon zeta eta theta iota kappa",
	}
	v := NewVectorizer(5)
	v.Fit(corpus)
	if v.VocabularySize() != 5 {
		t.Errorf("vocabulary size = %d, want 5", v.VocabularySize())
	}
}

func TestCosineSimilarity(t *testing.T) {
	corpus := []string{
		"panic attack and racing heart",
		"homework planning for school projects",
	}
	v := NewVectorizer(0)
	v.Fit(corpus)

	query := v.Transform("panic attack racing heart")
	simPanic := CosineSimilarity(query, v.Transform(corpus[0]))
	simHomework := CosineSimilarity(query, v.Transform(corpus[1]))

	if simPanic <= simHomework {
		t.Errorf("expected panic doc to outrank homework doc: %f vs %f", simPanic, simHomework)
	}

	// Identical text is maximally similar.
	self := CosineSimilarity(v.Transform(corpus[0]), v.Transform(corpus[0]))
	if math.Abs(self-1.0) > 1e-9 {
		t.Errorf("self similarity = %f, want 1", self)
	}

	// Mismatched lengths are treated as unrelated.
	if CosineSimilarity([]float64{1}, []float64{1, 0}) != 0 {
		t.Error("mismatched vector lengths should score 0")
	}
}
