package embeddings_test

import (
	"math"
	"testing"

	"github.com/jacobduba/sd18-isu/internal/embeddings"
)

func Test_LocalEmbedder_Deterministic(t *testing.T) {
	e := embeddings.NewLocal(8)
	v1, _ := e.EmbedQuery("hello")
	v2, _ := e.EmbedQuery("hello")
	if len(v1) != 8 || len(v2) != 8 {
		t.Fatalf("unexpected dim")
	}
	for i := range v1 {
		if v1[i] != v2[i] {
			t.Fatalf("vectors differ at %d", i)
		}
	}
}

func Test_LocalEmbedder_UnitNorm(t *testing.T) {
	e := embeddings.NewLocal(16)
	vecs, err := e.EmbedTexts([]string{"sort a list", "open a file", "parse json"})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range vecs {
		var sum float64
		for _, x := range v {
			sum += float64(x) * float64(x)
		}
		if math.Abs(math.Sqrt(sum)-1) > 1e-5 {
			t.Fatalf("vector %d norm %.8f, want 1", i, math.Sqrt(sum))
		}
	}
}

func Test_Normalize_ZeroVector(t *testing.T) {
	v := []float32{0, 0, 0}
	embeddings.Normalize(v)
	for i, x := range v {
		if x != 0 {
			t.Fatalf("zero vector changed at %d: %f", i, x)
		}
	}
}
