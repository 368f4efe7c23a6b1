package similarity

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDegenerateEmbedding is returned when a vector has zero norm
	ErrDegenerateEmbedding = errors.New("degenerate embedding: zero-norm vector")

	// ErrDimensionMismatch is returned when two vectors differ in length
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// Cosine returns dot(a,b) / (|a| * |b|), normalising both vectors explicitly
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0, ErrDegenerateEmbedding
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Combined multiplies name and description cosine similarity.
// Both pairs must align for a high score.
func Combined(nameA, nameB, descA, descB []float32) (float64, error) {
	nameSim, err := Cosine(nameA, nameB)
	if err != nil {
		return 0, fmt.Errorf("name similarity: %w", err)
	}
	descSim, err := Cosine(descA, descB)
	if err != nil {
		return 0, fmt.Errorf("description similarity: %w", err)
	}
	return nameSim * descSim, nil
}
