package tensor3d_test

import (
	"slices"
	"testing"

	"github.com/sw965/atrium/blas32/tensor/3d"
	"gonum.org/v1/gonum/blas/blas32"
)

func TestFromGeneral(t *testing.T) {
	x := blas32.General{Rows: 2, Cols: 2, Stride: 3, Data: []float32{1, 2, 0, 3, 4, 0}}
	y := tensor3d.FromGeneral(x)

	if !slices.Equal(y.Shape(), []int{1, 2, 2}) {
		t.Errorf("shape: got %v", y.Shape())
	}
	if !slices.Equal(y.Data, []float32{1, 2, 3, 4}) {
		t.Errorf("data: got %v", y.Data)
	}
	if y.Data[y.At(0, 1, 0)] != 3 {
		t.Errorf("At(0,1,0) = %v", y.Data[y.At(0, 1, 0)])
	}
}

func TestSqueeze(t *testing.T) {
	y := tensor3d.NewZeros(1, 2, 3)
	y.Data[y.At(0, 1, 2)] = 7
	g, err := y.Squeeze()
	if err != nil {
		t.Fatal(err)
	}
	if g.Rows != 2 || g.Cols != 3 || g.Data[1*g.Stride+2] != 7 {
		t.Errorf("got %+v", g)
	}

	if _, err := tensor3d.NewZeros(2, 2, 2).Squeeze(); err == nil {
		t.Errorf("expected error for 2 channels")
	}
}

func TestClone(t *testing.T) {
	y := tensor3d.NewZeros(1, 1, 2)
	c := y.Clone()
	c.Data[0] = 5
	if y.Data[0] != 0 {
		t.Errorf("clone shares data")
	}
}
