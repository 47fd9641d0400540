package geom

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrRaggedMatrix is returned when matrix rows do not share one length.
var ErrRaggedMatrix = errors.New("geom: rows have different lengths")

// Point4Matrix is a row-major grid of homogeneous control points.
type Point4Matrix struct {
	rows, cols int
	data       []Vec4
}

// NewPoint4Matrix copies rows into a matrix. Every row must have the same length.
func NewPoint4Matrix(rows [][]Vec4) (*Point4Matrix, error) {
	m := &Point4Matrix{rows: len(rows)}
	if len(rows) == 0 {
		return m, nil
	}
	m.cols = len(rows[0])
	m.data = make([]Vec4, 0, m.rows*m.cols)
	for i, row := range rows {
		if len(row) != m.cols {
			return nil, fmt.Errorf("row %d has %d points, want %d: %w", i, len(row), m.cols, ErrRaggedMatrix)
		}
		m.data = append(m.data, row...)
	}
	return m, nil
}

// MustPoint4Matrix is NewPoint4Matrix for literal data; it panics on ragged rows.
func MustPoint4Matrix(rows [][]Vec4) *Point4Matrix {
	m, err := NewPoint4Matrix(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// Rows returns the number of rows.
func (m *Point4Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Point4Matrix) Cols() int { return m.cols }

// At returns the point at row i, column j.
func (m *Point4Matrix) At(i, j int) Vec4 {
	return m.data[i*m.cols+j]
}

// Row returns a copy of row i.
func (m *Point4Matrix) Row(i int) []Vec4 {
	out := make([]Vec4, m.cols)
	copy(out, m.data[i*m.cols:(i+1)*m.cols])
	return out
}

// Col returns a copy of column j.
func (m *Point4Matrix) Col(j int) []Vec4 {
	out := make([]Vec4, m.rows)
	for i := range out {
		out[i] = m.At(i, j)
	}
	return out
}

// Grid returns the rows as nested slices.
func (m *Point4Matrix) Grid() [][]Vec4 {
	out := make([][]Vec4, m.rows)
	for i := range out {
		out[i] = m.Row(i)
	}
	return out
}

// Map returns a new matrix with f applied to every point.
func (m *Point4Matrix) Map(f func(Vec4) Vec4) *Point4Matrix {
	out := &Point4Matrix{rows: m.rows, cols: m.cols, data: make([]Vec4, len(m.data))}
	for i, p := range m.data {
		out.data[i] = f(p)
	}
	return out
}

// MarshalJSON encodes the matrix as an array of rows.
func (m *Point4Matrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Grid())
}

// UnmarshalJSON decodes an array of rows of equal length.
func (m *Point4Matrix) UnmarshalJSON(data []byte) error {
	var rows [][]Vec4
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	parsed, err := NewPoint4Matrix(rows)
	if err != nil {
		return err
	}
	*m = *parsed
	return nil
}
