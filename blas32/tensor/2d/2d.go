package tensor2d

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/blas/blas32"
)

func NewZeros(rows, cols int) blas32.General {
	return blas32.General{
		Rows:   rows,
		Cols:   cols,
		Stride: cols,
		Data:   make([]float32, rows*cols),
	}
}

func NewZerosLike(gen blas32.General) blas32.General {
	return NewZeros(gen.Rows, gen.Cols)
}

// FromFloat32s wraps row-major data without copying.
func FromFloat32s(rows, cols int, data []float32) (blas32.General, error) {
	if rows*cols != len(data) {
		return blas32.General{}, fmt.Errorf("tensor2d: %dx%d needs %d values, got %d", rows, cols, rows*cols, len(data))
	}
	return blas32.General{Rows: rows, Cols: cols, Stride: cols, Data: data}, nil
}

func N(gen blas32.General) int {
	return gen.Rows * gen.Cols
}

func Clone(gen blas32.General) blas32.General {
	return blas32.General{
		Rows:   gen.Rows,
		Cols:   gen.Cols,
		Stride: gen.Stride,
		Data:   slices.Clone(gen.Data),
	}
}

func At(gen blas32.General, row, col int) int {
	return row*gen.Stride + col
}

// Compact returns gen with Stride == Cols, copying only when needed.
func Compact(gen blas32.General) blas32.General {
	if gen.Stride == gen.Cols {
		return gen
	}
	y := NewZeros(gen.Rows, gen.Cols)
	for r := 0; r < gen.Rows; r++ {
		copy(y.Data[r*y.Stride:(r+1)*y.Stride], gen.Data[r*gen.Stride:r*gen.Stride+gen.Cols])
	}
	return y
}

func ToVector(gen blas32.General) blas32.Vector {
	gen = Compact(gen)
	return blas32.Vector{
		N:    N(gen),
		Inc:  1,
		Data: gen.Data,
	}
}

func Scal(alpha float32, gen blas32.General) {
	if gen.Stride != gen.Cols {
		for r := 0; r < gen.Rows; r++ {
			row := blas32.Vector{N: gen.Cols, Inc: 1, Data: gen.Data[r*gen.Stride : r*gen.Stride+gen.Cols]}
			blas32.Scal(alpha, row)
		}
		return
	}
	blas32.Scal(alpha, ToVector(gen))
}

func Transpose(gen blas32.General) blas32.General {
	t := NewZeros(gen.Cols, gen.Rows)
	for i := range t.Rows {
		for j := range t.Cols {
			t.Data[At(t, i, j)] = gen.Data[At(gen, j, i)]
		}
	}
	return t
}

func FlipLR(gen blas32.General) blas32.General {
	y := NewZerosLike(gen)
	for r := 0; r < gen.Rows; r++ {
		for c := 0; c < gen.Cols; c++ {
			y.Data[At(y, r, gen.Cols-1-c)] = gen.Data[At(gen, r, c)]
		}
	}
	return y
}

// Stats returns min, max and mean. An empty matrix yields zeros.
func Stats(gen blas32.General) (min, max, mean float32) {
	if N(gen) == 0 {
		return 0, 0, 0
	}
	min = gen.Data[0]
	max = gen.Data[0]
	var sum float64
	for r := 0; r < gen.Rows; r++ {
		for _, e := range gen.Data[r*gen.Stride : r*gen.Stride+gen.Cols] {
			if e < min {
				min = e
			}
			if e > max {
				max = e
			}
			sum += float64(e)
		}
	}
	return min, max, float32(sum / float64(N(gen)))
}
