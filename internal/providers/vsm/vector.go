package vsm

import (
	"math"
	"slices"
)

// Vector is a sparse term-weight vector with indices in ascending order.
type Vector struct {
	Indices []int
	Values  []float64
}

func (v Vector) IsZero() bool {
	return len(v.Indices) == 0
}

func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot is the cosine similarity of two L2-normalized vectors.
func Dot(a, b Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// normalized returns the weights as a unit vector, or the zero vector when
// there is nothing to normalize.
func normalized(weights map[int]float64) Vector {
	if len(weights) == 0 {
		return Vector{}
	}

	v := Vector{
		Indices: make([]int, 0, len(weights)),
		Values:  make([]float64, 0, len(weights)),
	}
	for idx := range weights {
		v.Indices = append(v.Indices, idx)
	}
	slices.Sort(v.Indices)
	for _, idx := range v.Indices {
		v.Values = append(v.Values, weights[idx])
	}

	norm := v.Norm()
	if norm == 0 || math.IsNaN(norm) {
		return Vector{}
	}
	for k := range v.Values {
		v.Values[k] /= norm
	}
	return v
}
