package vectormath

import (
	"fmt"
	"math"
)

func dot(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vectors must have the same dimension")
	}
	var product float32
	for i := range a {
		product += a[i] * b[i]
	}
	return product, nil
}

func magnitude(v []float32) float32 {
	var sumOfSquares float32
	for _, x := range v {
		sumOfSquares += x * x
	}
	return float32(math.Sqrt(float64(sumOfSquares)))
}

// CosineSimilarity returns the cosine of the angle between two vectors.
// A zero vector on either side yields 0 rather than an error.
func CosineSimilarity(a, b []float32) (float32, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("vectors cannot be empty")
	}
	d, err := dot(a, b)
	if err != nil {
		return 0, err
	}

	magA := magnitude(a)
	magB := magnitude(b)
	if magA == 0 || magB == 0 {
		return 0, nil
	}
	return d / (magA * magB), nil
}
