package cardiac

import (
	"context"
	"runtime"
	"slices"

	"github.com/pkg/errors"
	"github.com/sw965/atrium/npy"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Validate checks up front that every indexed image has a mask with the
// same 2-D shape, reading only file headers. Up to workers pairs are
// checked at once (workers <= 0 means GOMAXPROCS). The first failure is
// returned; Get performs the same shape check lazily either way.
func (d *Dataset) Validate(ctx context.Context, workers int) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, imgPath := range d.files {
		g.Go(func() error {
			return d.validatePair(ctx, imgPath)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	d.logger.Debug("validated dataset", zap.Int("slices", len(d.files)))
	return nil
}

func (d *Dataset) validatePair(ctx context.Context, imgPath string) error {
	maskPath, err := ImageToMaskPath(imgPath)
	if err != nil {
		return err
	}
	imgHeader, err := d.readHeader(ctx, imgPath)
	if err != nil {
		return errors.Wrapf(err, "cardiac: validate image %s", imgPath)
	}
	maskHeader, err := d.readHeader(ctx, maskPath)
	if err != nil {
		return errors.Wrapf(err, "cardiac: validate mask %s", maskPath)
	}
	if len(imgHeader.Shape) != 2 || !slices.Equal(imgHeader.Shape, maskHeader.Shape) {
		return &ShapeMismatchError{
			ImagePath: imgPath,
			MaskPath:  maskPath,
			Image:     imgHeader.Shape,
			Mask:      maskHeader.Shape,
		}
	}
	return nil
}

func (d *Dataset) readHeader(ctx context.Context, path string) (npy.Header, error) {
	rc, err := d.src.Open(ctx, path)
	if err != nil {
		return npy.Header{}, err
	}
	defer rc.Close()
	return npy.ReadHeader(rc)
}
