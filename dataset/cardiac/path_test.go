package cardiac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sw965/atrium/dataset/cardiac"
)

func TestImageToMaskPath(t *testing.T) {
	cases := map[string]string{
		"/prep/train/subject01/data/12.npy": "/prep/train/subject01/masks/12.npy",
		"subject01/data/0.npy":              "subject01/masks/0.npy",
		"/a/data/b/data/0.npy":              "/a/masks/b/data/0.npy",
		"data/0.npy":                        "masks/0.npy",
	}
	for in, want := range cases {
		got, err := cardiac.ImageToMaskPath(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)

		back, err := cardiac.MaskToImagePath(got)
		require.NoError(t, err, in)
		assert.Equal(t, in, back)
	}
}

func TestImageToMaskPathNoDataSegment(t *testing.T) {
	for _, p := range []string{"/prep/train/s/images/0.npy", "/prep/database/0.npy", "/prep/data.npy"} {
		_, err := cardiac.ImageToMaskPath(p)
		assert.ErrorIs(t, err, cardiac.ErrNoDataSegment, p)
	}
	_, err := cardiac.MaskToImagePath("/prep/train/s/data/0.npy")
	assert.ErrorIs(t, err, cardiac.ErrNoMasksSegment)
}
