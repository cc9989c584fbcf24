// Package atrium loads cardiac MRI slices and their segmentation masks for
// training segmentation models.
//
// Most callers only need Open:
//
//	aug, _ := augment.DefaultConfig().Build()
//	ds, err := atrium.Open(ctx, "/data/prep/train", cardiac.WithAugmenter(aug))
//	sample, err := ds.Get(ctx, 3) // sample.Image is (1, H, W) float32
package atrium

import (
	"context"

	"github.com/sw965/atrium/dataset/cardiac"
	"github.com/sw965/atrium/source"
)

// Open indexes root on the local disk.
func Open(ctx context.Context, root string, opts ...cardiac.Option) (*cardiac.Dataset, error) {
	return cardiac.New(ctx, source.NewOS(), root, opts...)
}
