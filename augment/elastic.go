package augment

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/sw965/atrium/blas32/tensor/2d"
	"github.com/sw965/atrium/segmap"
	"gonum.org/v1/gonum/blas/blas32"
)

// ElasticTransformation moves every pixel by a displacement field drawn
// uniformly from [-1, 1], smoothed with a Gaussian of width Sigma and
// scaled by Alpha.
type ElasticTransformation struct {
	Alpha Range
	Sigma Range
}

func DefaultElasticTransformation() ElasticTransformation {
	return ElasticTransformation{
		Alpha: Range{Min: 0, Max: 40},
		Sigma: Range{Min: 4, Max: 8},
	}
}

func NewElasticTransformation(alpha, sigma Range) (ElasticTransformation, error) {
	if err := alpha.validate("alpha"); err != nil {
		return ElasticTransformation{}, err
	}
	if err := sigma.validate("sigma"); err != nil {
		return ElasticTransformation{}, err
	}
	return ElasticTransformation{Alpha: alpha, Sigma: sigma}, nil
}

func (e ElasticTransformation) Augment(rng *rand.Rand, img blas32.General, seg *segmap.OnImage) (blas32.General, *segmap.OnImage, error) {
	m, err := checkShapes(img, seg)
	if err != nil {
		return blas32.General{}, nil, err
	}

	alpha := e.Alpha.Sample(rng)
	sigma := e.Sigma.Sample(rng)
	dx := displacementField(rng, img.Rows, img.Cols, alpha, sigma)
	dy := displacementField(rng, img.Rows, img.Cols, alpha, sigma)

	outImg := tensor2d.NewZerosLike(img)
	outMap := segmap.NewZerosLike(m)
	for r := 0; r < img.Rows; r++ {
		for c := 0; c < img.Cols; c++ {
			i := tensor2d.At(dx, r, c)
			x := float32(c) + dx.Data[i]
			y := float32(r) + dy.Data[i]
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

func displacementField(rng *rand.Rand, rows, cols int, alpha, sigma float32) blas32.General {
	field := tensor2d.NewZeros(rows, cols)
	for i := range field.Data {
		field.Data[i] = float32(rng.Float64()*2 - 1)
	}
	field = GaussianBlur(field, sigma)
	tensor2d.Scal(alpha, field)
	return field
}

// GaussianBlur smooths gen with a separable Gaussian truncated at 4 sigma,
// reflecting at the borders. sigma <= 0 returns a copy.
func GaussianBlur(gen blas32.General, sigma float32) blas32.General {
	if sigma <= 0 {
		return tensor2d.Clone(gen)
	}
	kernel := gaussianKernel(sigma)
	y := blurRows(gen, kernel)
	y = blurRows(tensor2d.Transpose(y), kernel)
	return tensor2d.Transpose(y)
}

func gaussianKernel(sigma float32) []float32 {
	radius := int(4*sigma + 0.5)
	kernel := make([]float32, 2*radius+1)
	var sum float32
	for i := -radius; i <= radius; i++ {
		v := math32.Exp(-float32(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

func blurRows(gen blas32.General, kernel []float32) blas32.General {
	radius := len(kernel) / 2
	y := tensor2d.NewZerosLike(gen)
	for r := 0; r < gen.Rows; r++ {
		for c := 0; c < gen.Cols; c++ {
			var acc float32
			for k, w := range kernel {
				acc += w * gen.Data[tensor2d.At(gen, r, reflect(c+k-radius, gen.Cols))]
			}
			y.Data[tensor2d.At(y, r, c)] = acc
		}
	}
	return y
}

// reflect maps i into [0, n) mirroring about the edges (d c b a | a b c d | d c b a).
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}
