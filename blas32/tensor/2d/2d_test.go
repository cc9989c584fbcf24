package tensor2d_test

import (
	"slices"
	"testing"

	"github.com/sw965/atrium/blas32/tensor/2d"
	"gonum.org/v1/gonum/blas/blas32"
)

func TestTranspose(t *testing.T) {
	x := blas32.General{
		Rows:   3,
		Cols:   5,
		Stride: 5,
		Data: []float32{
			1, 2, 3, 4, 5,
			2, 5, 4, 1, 3,
			3, 1, 5, 2, 4,
		},
	}

	result := tensor2d.Transpose(x)
	expected := blas32.General{
		Rows:   5,
		Cols:   3,
		Stride: 3,
		Data: []float32{
			1, 2, 3,
			2, 5, 1,
			3, 4, 5,
			4, 1, 2,
			5, 3, 4,
		},
	}

	if result.Rows != expected.Rows || result.Cols != expected.Cols || result.Stride != expected.Stride {
		t.Errorf("shape: got %dx%d/%d, want %dx%d/%d", result.Rows, result.Cols, result.Stride, expected.Rows, expected.Cols, expected.Stride)
	}
	if !slices.Equal(result.Data, expected.Data) {
		t.Errorf("data: got %v, want %v", result.Data, expected.Data)
	}
}

func TestFlipLR(t *testing.T) {
	x, err := tensor2d.FromFloat32s(2, 3, []float32{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatal(err)
	}
	y := tensor2d.FlipLR(x)
	if !slices.Equal(y.Data, []float32{3, 2, 1, 6, 5, 4}) {
		t.Errorf("got %v", y.Data)
	}
}

func TestFromFloat32sLength(t *testing.T) {
	if _, err := tensor2d.FromFloat32s(2, 2, []float32{1, 2, 3}); err == nil {
		t.Errorf("expected error for short data")
	}
}

func TestScalStrided(t *testing.T) {
	x := blas32.General{Rows: 2, Cols: 2, Stride: 3, Data: []float32{1, 2, 9, 3, 4, 9}}
	tensor2d.Scal(2, x)
	if !slices.Equal(x.Data, []float32{2, 4, 9, 6, 8, 9}) {
		t.Errorf("got %v", x.Data)
	}
	if c := tensor2d.Compact(x); !slices.Equal(c.Data, []float32{2, 4, 6, 8}) {
		t.Errorf("compact: got %v", c.Data)
	}
}

func TestStats(t *testing.T) {
	x, _ := tensor2d.FromFloat32s(1, 4, []float32{-1, 3, 2, 0})
	mn, mx, mean := tensor2d.Stats(x)
	if mn != -1 || mx != 3 || mean != 1 {
		t.Errorf("got %v %v %v", mn, mx, mean)
	}
}
