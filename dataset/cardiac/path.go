package cardiac

import (
	"fmt"
	"os"
	"strings"
)

const (
	DATA_DIR  = "data"
	MASKS_DIR = "masks"
)

// ImageToMaskPath replaces the first path segment equal to "data" with
// "masks". All other segments, including separators, are kept as they are.
func ImageToMaskPath(p string) (string, error) {
	q, ok := replaceSegment(p, DATA_DIR, MASKS_DIR)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoDataSegment, p)
	}
	return q, nil
}

// MaskToImagePath is the inverse of ImageToMaskPath.
func MaskToImagePath(p string) (string, error) {
	q, ok := replaceSegment(p, MASKS_DIR, DATA_DIR)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoMasksSegment, p)
	}
	return q, nil
}

func replaceSegment(p, from, to string) (string, bool) {
	sep := string(os.PathSeparator)
	parts := strings.Split(p, sep)
	for i, part := range parts {
		if part == from {
			parts[i] = to
			return strings.Join(parts, sep), true
		}
	}
	return "", false
}
