// Package vector provides the small amount of dense-vector math the
// recommender needs: cosine similarity, mean pooling, and the float32
// blob codec used by the sqlite-vec tables.
package vector

import (
	"encoding/binary"
	"math"
)

// Cosine computes the cosine similarity between two float32 vectors.
// Returns 0 if the vectors differ in length or either has zero norm.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		ai, bi := float64(a[i]), float64(b[i])
		dot += ai * bi
		normA += ai * ai
		normB += bi * bi
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Mean returns the element-wise mean of the given vectors, or nil when the
// input is empty. All vectors must share the same dimension; shorter vectors
// are treated as absent beyond their length, which never happens with a
// single embedding model.
func Mean(vecs [][]float32) []float32 {
	if len(vecs) == 0 {
		return nil
	}
	dim := len(vecs[0])
	sum := make([]float64, dim)
	for _, v := range vecs {
		for i := 0; i < dim && i < len(v); i++ {
			sum[i] += float64(v[i])
		}
	}
	out := make([]float32, dim)
	n := float64(len(vecs))
	for i, s := range sum {
		out[i] = float32(s / n)
	}
	return out
}

// ToBlob serialises a float32 slice to a little-endian byte blob.
// This is the format expected by sqlite-vec's BLOB column input.
func ToBlob(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// FromBlob deserialises a little-endian byte blob to a float32 slice.
func FromBlob(b []byte) []float32 {
	result := make([]float32, len(b)/4)
	for i := range result {
		bits := binary.LittleEndian.Uint32(b[i*4:])
		result[i] = math.Float32frombits(bits)
	}
	return result
}
