// Package cardiac indexes a directory of per-subject cardiac MRI slices and
// serves (image, mask) pairs for segmentation training.
//
// The expected layout is
//
//	root/<subject>/data/<slice>.npy   image slices (any numeric dtype)
//	root/<subject>/masks/<slice>.npy  label slices (integer dtype)
//
// with the same file names under data and masks.
package cardiac

import (
	"context"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/sw965/atrium/augment"
	"github.com/sw965/atrium/blas32/tensor/2d"
	"github.com/sw965/atrium/blas32/tensor/3d"
	"github.com/sw965/atrium/mathx/randx"
	"github.com/sw965/atrium/npy"
	"github.com/sw965/atrium/segmap"
	"github.com/sw965/atrium/source"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/blas/blas32"
)

// Sample is one channel-first (1, H, W) image and its mask.
type Sample struct {
	Image     tensor3d.General
	Mask      segmap.Volume
	ImagePath string
	MaskPath  string
	// Seed is the augmentation seed, or 0 when no augmenter is set.
	Seed uint64
}

// Dataset is safe for concurrent use. The file index is fixed by New.
type Dataset struct {
	src       source.Source
	root      string
	files     []string
	augmenter augment.Augmenter
	seeder    randx.Seeder
	cache     *lru.Cache
	logger    *zap.Logger
}

type rawPair struct {
	img  blas32.General
	mask segmap.Map
}

// New indexes root. Subjects are visited in the order src lists them and
// every file with the configured extension under <subject>/data is added.
// Entries of root that are not directories, and subjects without a data
// directory, contribute nothing.
func New(ctx context.Context, src source.Source, root string, opts ...Option) (*Dataset, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	files, subjects, err := extractFiles(ctx, src, root, o.extension)
	if err != nil {
		return nil, err
	}

	d := &Dataset{
		src:       src,
		root:      root,
		files:     files,
		augmenter: o.augmenter,
		seeder:    o.seeder,
		logger:    o.logger,
	}
	if o.cacheSize > 0 {
		d.cache, err = lru.New(o.cacheSize)
		if err != nil {
			return nil, errors.Wrap(err, "cardiac: create cache")
		}
	}

	d.logger.Debug("indexed dataset",
		zap.String("root", root),
		zap.Int("subjects", subjects),
		zap.Int("slices", len(files)),
		zap.Bool("augment", o.augmenter != nil),
	)
	return d, nil
}

func extractFiles(ctx context.Context, src source.Source, root, ext string) ([]string, int, error) {
	subjects, err := src.ReadDir(ctx, root)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "cardiac: list root %s", root)
	}

	var files []string
	n := 0
	for _, subject := range subjects {
		if !subject.IsDir {
			continue
		}
		dataDir := filepath.Join(root, subject.Name, DATA_DIR)
		entries, err := src.ReadDir(ctx, dataDir)
		if source.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, 0, errors.Wrapf(err, "cardiac: list %s", dataDir)
		}
		n++
		for _, e := range entries {
			if e.IsDir || filepath.Ext(e.Name) != ext {
				continue
			}
			files = append(files, filepath.Join(dataDir, e.Name))
		}
	}
	return files, n, nil
}

func (d *Dataset) Len() int {
	return len(d.files)
}

func (d *Dataset) Root() string {
	return d.root
}

// Path returns the image slice path at idx.
func (d *Dataset) Path(idx int) (string, error) {
	if idx < 0 || idx >= len(d.files) {
		return "", &IndexError{Index: idx, Len: len(d.files)}
	}
	return d.files[idx], nil
}

// Get loads the pair at idx, augments it when an augmenter is set, and adds
// the leading channel axis. The image is converted to float32; mask labels
// keep their values and dtype.
func (d *Dataset) Get(ctx context.Context, idx int) (Sample, error) {
	imgPath, err := d.Path(idx)
	if err != nil {
		return Sample{}, err
	}
	maskPath, err := ImageToMaskPath(imgPath)
	if err != nil {
		return Sample{}, err
	}

	img, mask, err := d.loadPair(ctx, imgPath, maskPath)
	if err != nil {
		return Sample{}, err
	}

	var seed uint64
	if d.augmenter != nil {
		// a fresh seed per call keeps concurrent callers decorrelated
		seed = d.seeder.Seed()
		seg, err := segmap.NewOnImage(mask, []int{img.Rows, img.Cols})
		if err != nil {
			return Sample{}, err
		}
		img, seg, err = d.augmenter.Augment(randx.NewPCG(seed), img, seg)
		if err != nil {
			return Sample{}, errors.Wrapf(err, "cardiac: augment %s", imgPath)
		}
		mask = seg.Arr()
	}

	d.logger.Debug("loaded sample",
		zap.Int("index", idx),
		zap.String("image", imgPath),
		zap.Uint64("seed", seed),
	)
	return Sample{
		Image:     tensor3d.FromGeneral(img),
		Mask:      mask.ExpandDims(),
		ImagePath: imgPath,
		MaskPath:  maskPath,
		Seed:      seed,
	}, nil
}

func (d *Dataset) loadPair(ctx context.Context, imgPath, maskPath string) (blas32.General, segmap.Map, error) {
	if d.cache != nil {
		if v, ok := d.cache.Get(imgPath); ok {
			p := v.(rawPair)
			return tensor2d.Clone(p.img), p.mask.Clone(), nil
		}
	}

	img, err := d.loadImage(ctx, imgPath)
	if err != nil {
		return blas32.General{}, segmap.Map{}, err
	}
	mask, err := d.loadMask(ctx, maskPath)
	if err != nil {
		return blas32.General{}, segmap.Map{}, err
	}
	if img.Rows != mask.Rows || img.Cols != mask.Cols {
		return blas32.General{}, segmap.Map{}, &ShapeMismatchError{
			ImagePath: imgPath,
			MaskPath:  maskPath,
			Image:     []int{img.Rows, img.Cols},
			Mask:      []int{mask.Rows, mask.Cols},
		}
	}

	if d.cache != nil {
		d.cache.Add(imgPath, rawPair{img: tensor2d.Clone(img), mask: mask.Clone()})
	}
	return img, mask, nil
}

func (d *Dataset) readArray(ctx context.Context, path string) (npy.Array, error) {
	rc, err := d.src.Open(ctx, path)
	if err != nil {
		return npy.Array{}, err
	}
	defer rc.Close()
	return npy.Read2D(rc)
}

func (d *Dataset) loadImage(ctx context.Context, path string) (blas32.General, error) {
	arr, err := d.readArray(ctx, path)
	if err != nil {
		return blas32.General{}, errors.Wrapf(err, "cardiac: load image %s", path)
	}
	data, err := arr.Float32s()
	if err != nil {
		return blas32.General{}, errors.Wrapf(err, "cardiac: load image %s", path)
	}
	return tensor2d.FromFloat32s(arr.Rows(), arr.Cols(), data)
}

func (d *Dataset) loadMask(ctx context.Context, path string) (segmap.Map, error) {
	arr, err := d.readArray(ctx, path)
	if err != nil {
		return segmap.Map{}, errors.Wrapf(err, "cardiac: load mask %s", path)
	}
	labels, err := arr.Int64s()
	if err != nil {
		return segmap.Map{}, errors.Wrapf(err, "cardiac: load mask %s", path)
	}
	return segmap.FromInt64s(arr.Rows(), arr.Cols(), labels, arr.DType)
}
