package cardiac

import (
	"github.com/sw965/atrium/augment"
	"github.com/sw965/atrium/mathx/randx"
	"github.com/sw965/atrium/npy"
	"go.uber.org/zap"
)

type options struct {
	augmenter augment.Augmenter
	seeder    randx.Seeder
	extension string
	cacheSize int
	logger    *zap.Logger
}

func defaultOptions() options {
	return options{
		seeder:    randx.NewUniformSeeder(),
		extension: npy.EXTENSION,
		logger:    zap.NewNop(),
	}
}

// Option configures New.
type Option func(*options)

// WithAugmenter applies a to every retrieved pair. nil disables augmentation.
func WithAugmenter(a augment.Augmenter) Option {
	return func(o *options) {
		o.augmenter = a
	}
}

// WithSeeder replaces the per-call seed source. Tests pass a
// randx.SequenceSeeder to make augmentation reproducible.
func WithSeeder(s randx.Seeder) Option {
	return func(o *options) {
		if s != nil {
			o.seeder = s
		}
	}
}

// WithExtension selects which files under <subject>/data are indexed.
func WithExtension(ext string) Option {
	return func(o *options) {
		o.extension = ext
	}
}

// WithCache keeps up to n decoded (image, mask) pairs in memory.
// Augmentation still runs on every Get.
func WithCache(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
