package segmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sw965/atrium/segmap"
)

func TestLabelsAndHistogram(t *testing.T) {
	m, err := segmap.FromInt64s(2, 3, []int64{0, 0, 2, 1, 0, 2}, "|u1")
	require.NoError(t, err)

	assert.Equal(t, []int64{0, 1, 2}, m.Labels())
	assert.Equal(t, map[int64]int{0: 3, 1: 1, 2: 2}, m.Histogram())
}

func TestExpandDimsSqueeze(t *testing.T) {
	m, err := segmap.FromInt64s(2, 2, []int64{1, 2, 3, 4}, "<i8")
	require.NoError(t, err)

	v := m.ExpandDims()
	assert.Equal(t, []int{1, 2, 2}, v.Shape())
	assert.Equal(t, "<i8", v.DType)
	assert.Equal(t, int64(3), v.Data[v.At(0, 1, 0)])

	back, err := v.Squeeze()
	require.NoError(t, err)
	assert.Equal(t, m.Data, back.Data)
}

func TestOnImage(t *testing.T) {
	m := segmap.NewZeros(4, 5, "|u1")
	s, err := segmap.NewOnImage(m, []int{4, 5})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5}, s.Shape)
	assert.Equal(t, m, s.Arr())

	_, err = segmap.NewOnImage(m, []int{4})
	assert.Error(t, err)
}

func TestFromInt64sLength(t *testing.T) {
	_, err := segmap.FromInt64s(3, 3, []int64{1}, "|u1")
	assert.Error(t, err)
}
