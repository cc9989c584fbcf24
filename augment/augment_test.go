package augment_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sw965/atrium/augment"
	"github.com/sw965/atrium/blas32/tensor/2d"
	"github.com/sw965/atrium/mathx/randx"
	"github.com/sw965/atrium/segmap"
	"gonum.org/v1/gonum/blas/blas32"
)

// fixture returns a 6x8 image whose pixel values equal the mask labels,
// with a labelled square in the middle.
func fixture(t *testing.T) (blas32.General, *segmap.OnImage) {
	t.Helper()
	rows, cols := 6, 8
	img := tensor2d.NewZeros(rows, cols)
	m := segmap.NewZeros(rows, cols, "|u1")
	for r := 2; r < 4; r++ {
		for c := 2; c < 6; c++ {
			img.Data[tensor2d.At(img, r, c)] = 1
			m.Data[m.At(r, c)] = 1
		}
	}
	m.Data[m.At(0, 0)] = 2
	img.Data[tensor2d.At(img, 0, 0)] = 2
	seg, err := segmap.NewOnImage(m, []int{rows, cols})
	require.NoError(t, err)
	return img, seg
}

func TestAffineIdentity(t *testing.T) {
	img, seg := fixture(t)
	a, err := augment.NewAffine(augment.Constant(1), augment.Constant(0))
	require.NoError(t, err)

	outImg, outSeg, err := a.Augment(randx.NewPCG(1), img, seg)
	require.NoError(t, err)
	assert.Equal(t, img.Data, outImg.Data)
	assert.Equal(t, seg.Arr().Data, outSeg.Arr().Data)
	assert.Equal(t, seg.Shape, outSeg.Shape)
}

func TestAffineRotate180(t *testing.T) {
	img, seg := fixture(t)
	a, err := augment.NewAffine(augment.Constant(1), augment.Constant(180))
	require.NoError(t, err)

	outImg, outSeg, err := a.Augment(randx.NewPCG(1), img, seg)
	require.NoError(t, err)

	m := seg.Arr()
	out := outSeg.Arr()
	for r := 0; r < img.Rows; r++ {
		for c := 0; c < img.Cols; c++ {
			fr, fc := img.Rows-1-r, img.Cols-1-c
			assert.Equal(t, m.Get(r, c), out.Get(fr, fc))
			assert.InDelta(t, img.Data[tensor2d.At(img, r, c)], outImg.Data[tensor2d.At(outImg, fr, fc)], 1e-3)
		}
	}
}

func TestAffineInvertedRange(t *testing.T) {
	_, err := augment.NewAffine(augment.Range{Min: 2, Max: 1}, augment.Constant(0))
	assert.Error(t, err)
}

func TestElasticDeterministicPerSeed(t *testing.T) {
	img, seg := fixture(t)
	e := augment.ElasticTransformation{Alpha: augment.Constant(3), Sigma: augment.Constant(1)}

	img1, seg1, err := e.Augment(randx.NewPCG(7), img, seg)
	require.NoError(t, err)
	img2, seg2, err := e.Augment(randx.NewPCG(7), img, seg)
	require.NoError(t, err)
	assert.Equal(t, img1.Data, img2.Data)
	assert.Equal(t, seg1.Arr().Data, seg2.Arr().Data)

	img3, _, err := e.Augment(randx.NewPCG(8), img, seg)
	require.NoError(t, err)
	assert.NotEqual(t, img1.Data, img3.Data)
}

func TestElasticKeepsLabelSet(t *testing.T) {
	img, seg := fixture(t)
	e := augment.DefaultElasticTransformation()
	for seed := uint64(0); seed < 10; seed++ {
		_, out, err := e.Augment(randx.NewPCG(seed), img, seg)
		require.NoError(t, err)
		for _, l := range out.Arr().Labels() {
			assert.Contains(t, []int64{0, 1, 2}, l)
		}
	}
}

func TestElasticZeroAlphaIsIdentity(t *testing.T) {
	img, seg := fixture(t)
	e := augment.ElasticTransformation{Alpha: augment.Constant(0), Sigma: augment.Constant(2)}
	outImg, outSeg, err := e.Augment(randx.NewPCG(3), img, seg)
	require.NoError(t, err)
	assert.Equal(t, img.Data, outImg.Data)
	assert.Equal(t, seg.Arr().Data, outSeg.Arr().Data)
}

func TestGaussianBlurPreservesConstant(t *testing.T) {
	x := tensor2d.NewZeros(5, 7)
	for i := range x.Data {
		x.Data[i] = 2
	}
	y := augment.GaussianBlur(x, 1.5)
	for _, v := range y.Data {
		assert.InDelta(t, 2, v, 1e-5)
	}
}

func TestFliplr(t *testing.T) {
	img, seg := fixture(t)
	outImg, outSeg, err := augment.Fliplr{P: 1}.Augment(randx.NewPCG(1), img, seg)
	require.NoError(t, err)
	assert.Equal(t, tensor2d.FlipLR(img).Data, outImg.Data)
	assert.Equal(t, int64(2), outSeg.Arr().Get(0, img.Cols-1))

	outImg, _, err = augment.Fliplr{P: 0}.Augment(randx.NewPCG(1), img, seg)
	require.NoError(t, err)
	assert.Equal(t, img.Data, outImg.Data)
}

func TestShapeMismatch(t *testing.T) {
	img := tensor2d.NewZeros(4, 4)
	seg, err := segmap.NewOnImage(segmap.NewZeros(3, 4, "|u1"), []int{3, 4})
	require.NoError(t, err)

	_, _, err = augment.Fliplr{P: 1}.Augment(randx.NewPCG(1), img, seg)
	assert.ErrorIs(t, err, augment.ErrShapeMismatch)
}

func TestSequentialAndFunc(t *testing.T) {
	img, seg := fixture(t)
	calls := 0
	count := augment.Func(func(_ *rand.Rand, img blas32.General, seg *segmap.OnImage) (blas32.General, *segmap.OnImage, error) {
		calls++
		return img, seg, nil
	})
	seq := augment.Sequential{count, augment.Fliplr{P: 1}, count}

	outImg, _, err := seq.Augment(randx.NewPCG(1), img, seg)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, tensor2d.FlipLR(img).Data, outImg.Data)
}

func TestRangeSample(t *testing.T) {
	rng := randx.NewPCG(9)
	r := augment.Range{Min: 0.85, Max: 1.15}
	for i := 0; i < 100; i++ {
		v := r.Sample(rng)
		assert.GreaterOrEqual(t, v, float32(0.85))
		assert.LessOrEqual(t, v, float32(1.15))
	}
	assert.Equal(t, float32(3), augment.Constant(3).Sample(rng))
}
