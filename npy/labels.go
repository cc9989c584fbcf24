package npy

import "fmt"

// FromInt64s builds an Array of the given integer (or bool) dtype, the
// inverse of Array.Int64s. Values that do not fit the dtype are an error.
func FromInt64s(dtype string, shape []int, labels []int64) (Array, error) {
	arr := Array{DType: dtype, Shape: append([]int(nil), shape...)}
	if arr.N() != len(labels) {
		return Array{}, fmt.Errorf("npy: shape %v holds %d values, got %d", shape, arr.N(), len(labels))
	}

	var err error
	switch kind(dtype) {
	case "b1":
		d := make([]bool, len(labels))
		for i, v := range labels {
			if v != 0 && v != 1 {
				return Array{}, fmt.Errorf("npy: label %d does not fit %s", v, dtype)
			}
			d[i] = v == 1
		}
		arr.Data = d
	case "i1":
		arr.Data, err = narrow[int8](labels, -1<<7, 1<<7-1)
	case "u1":
		arr.Data, err = narrow[uint8](labels, 0, 1<<8-1)
	case "i2":
		arr.Data, err = narrow[int16](labels, -1<<15, 1<<15-1)
	case "u2":
		arr.Data, err = narrow[uint16](labels, 0, 1<<16-1)
	case "i4":
		arr.Data, err = narrow[int32](labels, -1<<31, 1<<31-1)
	case "u4":
		arr.Data, err = narrow[uint32](labels, 0, 1<<32-1)
	case "i8":
		arr.Data = append([]int64(nil), labels...)
	case "u8":
		arr.Data, err = narrow[uint64](labels, 0, 1<<63-1)
	default:
		return Array{}, fmt.Errorf("%w: %q", ErrNotInteger, dtype)
	}
	if err != nil {
		return Array{}, err
	}
	return arr, nil
}

func narrow[T ~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~uint64](labels []int64, lo, hi int64) ([]T, error) {
	d := make([]T, len(labels))
	for i, v := range labels {
		if v < lo || v > hi {
			return nil, fmt.Errorf("npy: label %d outside [%d, %d]", v, lo, hi)
		}
		d[i] = T(v)
	}
	return d, nil
}
