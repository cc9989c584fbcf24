package cardiac

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned by Get and Path for idx < 0 or idx >= Len().
	ErrIndexOutOfRange = errors.New("cardiac: index out of range")
	// ErrNoDataSegment is returned when an image path has no "data" segment.
	ErrNoDataSegment = errors.New("cardiac: path has no data segment")
	// ErrNoMasksSegment is returned when a mask path has no "masks" segment.
	ErrNoMasksSegment = errors.New("cardiac: path has no masks segment")
)

// IndexError reports an out-of-range index.
// It satisfies errors.Is(err, ErrIndexOutOfRange).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("cardiac: index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// ShapeMismatchError reports an image slice and mask slice of different sizes.
type ShapeMismatchError struct {
	ImagePath string
	MaskPath  string
	Image     []int
	Mask      []int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("cardiac: image %s has shape %v but mask %s has shape %v", e.ImagePath, e.Image, e.MaskPath, e.Mask)
}
