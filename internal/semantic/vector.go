package semantic

import "math"

// Vector is one sample's position in the semantic feature space.
type Vector []float64

// Centroid is the element-wise mean. All vectors must share one dimension.
func Centroid(vectors []Vector) Vector {
	if len(vectors) == 0 {
		return Vector{}
	}
	out := make(Vector, len(vectors[0]))
	for _, v := range vectors {
		for i := range out {
			out[i] += v[i]
		}
	}
	for i := range out {
		out[i] /= float64(len(vectors))
	}
	return out
}

// SemanticCohesion is 1 - meanDistanceToCentroid/sqrt(dim), floored at 0.
// An empty set scores 0 and a single vector scores 1.
func SemanticCohesion(vectors []Vector) float64 {
	switch len(vectors) {
	case 0:
		return 0
	case 1:
		return 1
	}
	centroid := Centroid(vectors)
	if len(centroid) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range vectors {
		total += Euclidean(v, centroid)
	}
	mean := total / float64(len(vectors))
	return math.Max(0, 1-mean/math.Sqrt(float64(len(centroid))))
}

// TopicDiversity is the mean pairwise Euclidean distance over unordered pairs.
func TopicDiversity(vectors []Vector) float64 {
	if len(vectors) < 2 {
		return 0
	}
	total := 0.0
	pairs := 0
	for i := 0; i < len(vectors); i++ {
		for j := i + 1; j < len(vectors); j++ {
			total += Euclidean(vectors[i], vectors[j])
			pairs++
		}
	}
	return total / float64(pairs)
}

func Euclidean(a, b Vector) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func checkDimensions(vectors []Vector) error {
	for _, v := range vectors[1:] {
		if len(v) != len(vectors[0]) {
			return ErrDimensionMismatch
		}
	}
	return nil
}
