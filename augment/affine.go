package augment

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/sw965/atrium/blas32/tensor/2d"
	"github.com/sw965/atrium/segmap"
	"gonum.org/v1/gonum/blas/blas32"
)

// Affine zooms and rotates about the slice centre. Rotate is in degrees.
// Images are resampled bilinearly, labels by nearest neighbour, and pixels
// mapped from outside the slice are filled with 0.
type Affine struct {
	Scale  Range
	Rotate Range
}

func NewAffine(scale, rotate Range) (Affine, error) {
	if err := scale.validate("scale"); err != nil {
		return Affine{}, err
	}
	if err := rotate.validate("rotate"); err != nil {
		return Affine{}, err
	}
	return Affine{Scale: scale, Rotate: rotate}, nil
}

func (a Affine) Augment(rng *rand.Rand, img blas32.General, seg *segmap.OnImage) (blas32.General, *segmap.OnImage, error) {
	m, err := checkShapes(img, seg)
	if err != nil {
		return blas32.General{}, nil, err
	}

	scale := a.Scale.Sample(rng)
	theta := a.Rotate.Sample(rng) * math32.Pi / 180
	if scale == 0 {
		scale = 1
	}
	sin, cos := math32.Sin(theta), math32.Cos(theta)
	cx := float32(img.Cols-1) / 2
	cy := float32(img.Rows-1) / 2

	// inverse map: destination pixel -> source coordinate
	src := func(row, col int) (float32, float32) {
		dx := (float32(col) - cx) / scale
		dy := (float32(row) - cy) / scale
		return cx + cos*dx + sin*dy, cy - sin*dx + cos*dy
	}

	outImg := tensor2d.NewZerosLike(img)
	outMap := segmap.NewZerosLike(m)
	for r := 0; r < img.Rows; r++ {
		for c := 0; c < img.Cols; c++ {
			x, y := src(r, c)
			outImg.Data[tensor2d.At(outImg, r, c)] = bilinear(img, x, y)
			outMap.Data[outMap.At(r, c)] = nearest(m, x, y)
		}
	}

	outSeg, err := rewrap(outMap, seg)
	if err != nil {
		return blas32.General{}, nil, err
	}
	return outImg, outSeg, nil
}

// Fliplr mirrors both arrays horizontally with probability P.
type Fliplr struct {
	P float64
}

func (f Fliplr) Augment(rng *rand.Rand, img blas32.General, seg *segmap.OnImage) (blas32.General, *segmap.OnImage, error) {
	m, err := checkShapes(img, seg)
	if err != nil {
		return blas32.General{}, nil, err
	}
	if rng.Float64() >= f.P {
		return img, seg, nil
	}

	outMap := segmap.NewZerosLike(m)
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			outMap.Data[outMap.At(r, m.Cols-1-c)] = m.Get(r, c)
		}
	}
	outSeg, err := rewrap(outMap, seg)
	if err != nil {
		return blas32.General{}, nil, err
	}
	return tensor2d.FlipLR(img), outSeg, nil
}
