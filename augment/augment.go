// Package augment applies random spatial transforms to an image slice and
// its segmentation map with a single parameter draw, so both receive the
// same warp.
package augment

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/sw965/atrium/segmap"
	"gonum.org/v1/gonum/blas/blas32"
)

var ErrShapeMismatch = errors.New("augment: image and segmentation map shapes differ")

// Augmenter transforms an image and its segmentation map together.
// rng is the only source of randomness an implementation may use.
type Augmenter interface {
	Augment(rng *rand.Rand, img blas32.General, seg *segmap.OnImage) (blas32.General, *segmap.OnImage, error)
}

// Func adapts a function to Augmenter.
type Func func(rng *rand.Rand, img blas32.General, seg *segmap.OnImage) (blas32.General, *segmap.OnImage, error)

func (f Func) Augment(rng *rand.Rand, img blas32.General, seg *segmap.OnImage) (blas32.General, *segmap.OnImage, error) {
	return f(rng, img, seg)
}

// Range is a closed interval parameters are drawn from uniformly.
type Range struct {
	Min float32
	Max float32
}

func Constant(v float32) Range {
	return Range{Min: v, Max: v}
}

func (r Range) Sample(rng *rand.Rand) float32 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + float32(rng.Float64())*(r.Max-r.Min)
}

func (r Range) validate(name string) error {
	if r.Min > r.Max {
		return fmt.Errorf("augment: %s range [%v, %v] is inverted", name, r.Min, r.Max)
	}
	return nil
}

// Sequential applies its children in order.
type Sequential []Augmenter

func (s Sequential) Augment(rng *rand.Rand, img blas32.General, seg *segmap.OnImage) (blas32.General, *segmap.OnImage, error) {
	var err error
	for _, a := range s {
		img, seg, err = a.Augment(rng, img, seg)
		if err != nil {
			return blas32.General{}, nil, err
		}
	}
	return img, seg, nil
}

func checkShapes(img blas32.General, seg *segmap.OnImage) (segmap.Map, error) {
	if seg == nil {
		return segmap.Map{}, errors.New("augment: nil segmentation map")
	}
	m := seg.Arr()
	if m.Rows != img.Rows || m.Cols != img.Cols {
		return segmap.Map{}, fmt.Errorf("%w: image %dx%d, map %dx%d", ErrShapeMismatch, img.Rows, img.Cols, m.Rows, m.Cols)
	}
	return m, nil
}

func rewrap(m segmap.Map, seg *segmap.OnImage) (*segmap.OnImage, error) {
	return segmap.NewOnImage(m, seg.Shape)
}

// pixel returns 0 outside the image (constant fill).
func pixel(img blas32.General, row, col int) float32 {
	if row < 0 || row >= img.Rows || col < 0 || col >= img.Cols {
		return 0
	}
	return img.Data[row*img.Stride+col]
}

func bilinear(img blas32.General, x, y float32) float32 {
	x0 := math32.Floor(x)
	y0 := math32.Floor(y)
	fx := x - x0
	fy := y - y0
	c, r := int(x0), int(y0)

	v := (1 - fx) * (1 - fy) * pixel(img, r, c)
	if fx != 0 {
		v += fx * (1 - fy) * pixel(img, r, c+1)
	}
	if fy != 0 {
		v += (1 - fx) * fy * pixel(img, r+1, c)
		if fx != 0 {
			v += fx * fy * pixel(img, r+1, c+1)
		}
	}
	return v
}

// nearest returns label 0 outside the map.
func nearest(m segmap.Map, x, y float32) int64 {
	c := int(math32.Round(x))
	r := int(math32.Round(y))
	if r < 0 || r >= m.Rows || c < 0 || c >= m.Cols {
		return 0
	}
	return m.Data[m.At(r, c)]
}
