package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/sw965/atrium/augment"
	"github.com/sw965/atrium/blas32/tensor/2d"
	"github.com/sw965/atrium/dataset/cardiac"
	"github.com/sw965/atrium/mathx/randx"
	"github.com/sw965/atrium/npy"
	"github.com/sw965/atrium/source"
	"github.com/sw965/atrium/source/minio"
	"go.uber.org/zap"
)

func (g *globalFlags) source() (source.Source, error) {
	if g.minio.endpoint == "" {
		return source.NewOS(), nil
	}
	if g.minio.bucket == "" {
		return nil, errors.New("--bucket is required with --minio-endpoint")
	}
	src, err := minio.New(minio.Config{
		Endpoint:  g.minio.endpoint,
		AccessKey: g.minio.accessKey,
		SecretKey: g.minio.secretKey,
		Secure:    g.minio.secure,
		Bucket:    g.minio.bucket,
		Prefix:    g.minio.prefix,
	})
	if err != nil {
		return nil, err
	}
	return src, nil
}

func (g *globalFlags) open(ctx context.Context, root string, logger *zap.Logger, opts ...cardiac.Option) (*cardiac.Dataset, error) {
	src, err := g.source()
	if err != nil {
		return nil, err
	}
	opts = append([]cardiac.Option{
		cardiac.WithExtension(g.extension),
		cardiac.WithCache(g.cacheSize),
		cardiac.WithLogger(logger),
	}, opts...)
	return cardiac.New(ctx, src, root, opts...)
}

// withLogger runs fn with a logger built from the global flags and flushes it afterwards.
func (g *globalFlags) withLogger(fn func(*zap.Logger) error) error {
	logger, err := newLogger(g.debug)
	if err != nil {
		return err
	}
	defer logger.Sync()
	if err := fn(logger); err != nil {
		logger.Error("command failed", zap.Error(err))
		return err
	}
	return nil
}

func sizeCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "size ROOT",
		Short: "print the number of indexed slices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withLogger(func(logger *zap.Logger) error {
				d, err := g.open(cmd.Context(), args[0], logger)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), d.Len())
				return nil
			})
		},
	}
}

func validateCmd(g *globalFlags) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "validate ROOT",
		Short: "check that every image slice has a mask of the same shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withLogger(func(logger *zap.Logger) error {
				d, err := g.open(cmd.Context(), args[0], logger)
				if err != nil {
					return err
				}
				if err := d.Validate(cmd.Context(), workers); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %d pairs\n", d.Len())
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "pairs checked concurrently (0 = GOMAXPROCS)")
	return cmd
}

type sampleFlags struct {
	augmentPath    string
	defaultAugment bool
	seed           int64
	outDir         string
}

func sampleCmd(g *globalFlags) *cobra.Command {
	f := &sampleFlags{}
	cmd := &cobra.Command{
		Use:   "sample ROOT INDEX",
		Short: "load one (image, mask) pair and describe it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrapf(err, "parse index %q", args[1])
			}
			return g.withLogger(func(logger *zap.Logger) error {
				opts, err := f.options()
				if err != nil {
					return err
				}
				d, err := g.open(cmd.Context(), args[0], logger, opts...)
				if err != nil {
					return err
				}
				sample, err := d.Get(cmd.Context(), idx)
				if err != nil {
					return err
				}
				if err := describe(cmd.OutOrStdout(), sample); err != nil {
					return err
				}
				if f.outDir == "" {
					return nil
				}
				return export(afero.NewOsFs(), f.outDir, idx, sample)
			})
		},
	}
	cmd.Flags().StringVar(&f.augmentPath, "augment", "", "YAML augmentation config")
	cmd.Flags().BoolVar(&f.defaultAugment, "default-augment", false, "use the built-in affine + elastic pipeline")
	cmd.Flags().Int64Var(&f.seed, "seed", -1, "fixed augmentation seed (-1 draws a fresh one)")
	cmd.Flags().StringVar(&f.outDir, "out", "", "write the (possibly augmented) image and mask as .npy into this directory")
	return cmd
}

func (f *sampleFlags) options() ([]cardiac.Option, error) {
	var cfg *augment.Config
	switch {
	case f.augmentPath != "":
		data, err := os.ReadFile(f.augmentPath)
		if err != nil {
			return nil, err
		}
		c, err := augment.ParseConfig(data)
		if err != nil {
			return nil, err
		}
		cfg = &c
	case f.defaultAugment:
		c := augment.DefaultConfig()
		cfg = &c
	default:
		return nil, nil
	}

	aug, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	opts := []cardiac.Option{cardiac.WithAugmenter(aug)}
	if f.seed >= 0 {
		opts = append(opts, cardiac.WithSeeder(randx.NewSequenceSeeder(uint64(f.seed))))
	}
	return opts, nil
}

func describe(w io.Writer, s cardiac.Sample) error {
	img, err := s.Image.Squeeze()
	if err != nil {
		return err
	}
	mask, err := s.Mask.Squeeze()
	if err != nil {
		return err
	}
	mn, mx, mean := tensor2d.Stats(img)
	hist := mask.Histogram()
	labels := mask.Labels()

	fmt.Fprintf(w, "image  %s shape=%v min=%g max=%g mean=%g\n", s.ImagePath, s.Image.Shape(), mn, mx, mean)
	fmt.Fprintf(w, "mask   %s shape=%v dtype=%s\n", s.MaskPath, s.Mask.Shape(), s.Mask.DType)
	for _, l := range labels {
		fmt.Fprintf(w, "  label %d: %d px\n", l, hist[l])
	}
	if s.Seed != 0 {
		fmt.Fprintf(w, "seed   %d\n", s.Seed)
	}
	return nil
}

// export writes <out>/<idx>_image.npy (float32) and <out>/<idx>_mask.npy
// (the mask's original dtype), both with the channel axis.
func export(fs afero.Fs, outDir string, idx int, s cardiac.Sample) error {
	if err := fs.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	maskArr, err := npy.FromInt64s(s.Mask.DType, s.Mask.Shape(), s.Mask.Data)
	if err != nil {
		return err
	}
	files := []struct {
		name string
		arr  npy.Array
	}{
		{fmt.Sprintf("%d_image.npy", idx), npy.Array{Shape: s.Image.Shape(), Data: slices.Clone(s.Image.Data)}},
		{fmt.Sprintf("%d_mask.npy", idx), maskArr},
	}
	for _, f := range files {
		var buf bytes.Buffer
		if err := npy.Write(&buf, f.arr); err != nil {
			return err
		}
		if err := afero.WriteFile(fs, filepath.Join(outDir, f.name), buf.Bytes(), 0o644); err != nil {
			return err
		}
	}
	return nil
}
