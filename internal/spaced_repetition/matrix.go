package spaced_repetition

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// matrixKeyPlaces is the precision ease factors are rounded to when used as keys.
const matrixKeyPlaces = 3

type matrixKey struct {
	n  int
	ef float64
}

func newMatrixKey(n int, ef float64) matrixKey {
	return matrixKey{n: n, ef: roundTo(ef, matrixKeyPlaces)}
}

// Matrix is the SM5 optimal-factor matrix, (repetition, ease factor) → optimal factor.
//
// A Matrix is immutable: With returns a modified copy and leaves the receiver
// untouched, so a snapshot can be shared freely. Callers that keep a canonical
// matrix must store the value returned by each SM5 review, and must serialise
// those updates themselves.
// The zero value is an empty matrix.
type Matrix struct {
	entries map[matrixKey]float64
}

// MatrixEntry is one stored optimal factor.
type MatrixEntry struct {
	Repetition    int     `json:"repetition" db:"repetition"`
	EaseFactor    float64 `json:"ease_factor" db:"ease_factor"`
	OptimalFactor float64 `json:"optimal_factor" db:"optimal_factor"`
}

// NewMatrix builds a matrix from stored entries. Later duplicates win.
func NewMatrix(entries ...MatrixEntry) Matrix {
	m := Matrix{entries: make(map[matrixKey]float64, len(entries))}
	for _, e := range entries {
		m.entries[newMatrixKey(e.Repetition, e.EaseFactor)] = e.OptimalFactor
	}
	return m
}

// Len returns the number of stored entries.
func (m Matrix) Len() int {
	return len(m.entries)
}

// Lookup returns the stored optimal factor for (n, ef), if any.
func (m Matrix) Lookup(n int, ef float64) (float64, bool) {
	of, ok := m.entries[newMatrixKey(n, ef)]
	return of, ok
}

// OptimalFactor returns the stored factor for (n, ef), falling back to
// InitialOptimalFactor for unseen keys.
func (m Matrix) OptimalFactor(n int, ef, initialInterval float64) float64 {
	if of, ok := m.Lookup(n, ef); ok {
		return of
	}
	return InitialOptimalFactor(n, ef, initialInterval)
}

// InitialOptimalFactor seeds an unseen matrix cell: the initial interval for
// the first repetition, the ease factor itself afterwards.
func InitialOptimalFactor(n int, ef, initialInterval float64) float64 {
	if n == 1 {
		return initialInterval
	}
	return ef
}

// With returns a copy of m with (n, ef) set to of. m is not modified.
func (m Matrix) With(n int, ef, of float64) Matrix {
	out := Matrix{entries: make(map[matrixKey]float64, len(m.entries)+1)}
	for k, v := range m.entries {
		out.entries[k] = v
	}
	out.entries[newMatrixKey(n, ef)] = of
	return out
}

// Entries returns every cell ordered by repetition, then ease factor.
func (m Matrix) Entries() []MatrixEntry {
	entries := make([]MatrixEntry, 0, len(m.entries))
	for k, v := range m.entries {
		entries = append(entries, MatrixEntry{Repetition: k.n, EaseFactor: k.ef, OptimalFactor: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Repetition != entries[j].Repetition {
			return entries[i].Repetition < entries[j].Repetition
		}
		return entries[i].EaseFactor < entries[j].EaseFactor
	})
	return entries
}

// Equal reports whether both matrices hold exactly the same cells.
func (m Matrix) Equal(other Matrix) bool {
	if len(m.entries) != len(other.entries) {
		return false
	}
	for k, v := range m.entries {
		if ov, ok := other.entries[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the matrix as {"<n>": {"<ef>": of}}.
func (m Matrix) MarshalJSON() ([]byte, error) {
	nested := make(map[string]map[string]float64)
	for k, v := range m.entries {
		row := strconv.Itoa(k.n)
		if nested[row] == nil {
			nested[row] = make(map[string]float64)
		}
		nested[row][strconv.FormatFloat(k.ef, 'f', -1, 64)] = v
	}
	return json.Marshal(nested)
}

// UnmarshalJSON implements json.Unmarshaler for the nested layout.
func (m *Matrix) UnmarshalJSON(data []byte) error {
	var nested map[string]map[string]float64
	if err := json.Unmarshal(data, &nested); err != nil {
		return fmt.Errorf("spaced_repetition: decode matrix: %w", err)
	}
	out := Matrix{entries: make(map[matrixKey]float64)}
	for row, cols := range nested {
		n, err := strconv.Atoi(row)
		if err != nil {
			return fmt.Errorf("spaced_repetition: matrix repetition key %q: %w", row, err)
		}
		for col, of := range cols {
			ef, err := strconv.ParseFloat(col, 64)
			if err != nil {
				return fmt.Errorf("spaced_repetition: matrix ease key %q: %w", col, err)
			}
			out.entries[newMatrixKey(n, ef)] = of
		}
	}
	*m = out
	return nil
}
