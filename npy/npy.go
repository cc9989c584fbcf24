// Package npy reads and writes NumPy .npy array files.
package npy

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sbinet/npyio"
)

const EXTENSION = ".npy"

var (
	ErrUnsupportedDType = errors.New("npy: unsupported dtype")
	ErrNot2D            = errors.New("npy: array is not 2-D")
	ErrNotInteger       = errors.New("npy: dtype is not an integer type")
	ErrOverflow         = errors.New("npy: value overflows int64")
)

// Array is a decoded array in C (row-major) order.
// Data holds one of []bool, []int8, []uint8, []int16, []uint16, []int32,
// []uint32, []int64, []uint64, []float32 or []float64.
type Array struct {
	DType string
	Shape []int
	Data  any
}

func (a Array) N() int {
	n := 1
	for _, s := range a.Shape {
		n *= s
	}
	return n
}

// Kind returns the dtype without its byte-order prefix, e.g. "f4" or "u1".
func (a Array) Kind() string {
	return kind(a.DType)
}

func (a Array) Is2D() bool {
	return len(a.Shape) == 2
}

func (a Array) Rows() int {
	if len(a.Shape) < 1 {
		return 0
	}
	return a.Shape[0]
}

func (a Array) Cols() int {
	if len(a.Shape) < 2 {
		return 0
	}
	return a.Shape[1]
}

func kind(dtype string) string {
	return strings.TrimLeft(dtype, "<>|=")
}

func newSlice(dtype string, n int) (any, error) {
	switch kind(dtype) {
	case "b1":
		return make([]bool, n), nil
	case "i1":
		return make([]int8, n), nil
	case "u1":
		return make([]uint8, n), nil
	case "i2":
		return make([]int16, n), nil
	case "u2":
		return make([]uint16, n), nil
	case "i4":
		return make([]int32, n), nil
	case "u4":
		return make([]uint32, n), nil
	case "i8":
		return make([]int64, n), nil
	case "u8":
		return make([]uint64, n), nil
	case "f4":
		return make([]float32, n), nil
	case "f8":
		return make([]float64, n), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDType, dtype)
}

// Read decodes one .npy file from r. Fortran-ordered data is reordered to C order.
func Read(r io.Reader) (Array, error) {
	nr, err := npyio.NewReader(r)
	if err != nil {
		return Array{}, err
	}
	descr := nr.Header.Descr
	shape := append([]int(nil), descr.Shape...)
	arr := Array{DType: descr.Type, Shape: shape}

	data, err := newSlice(descr.Type, arr.N())
	if err != nil {
		return Array{}, err
	}

	switch d := data.(type) {
	case []bool:
		err = nr.Read(&d)
		data = d
	case []int8:
		err = nr.Read(&d)
		data = d
	case []uint8:
		err = nr.Read(&d)
		data = d
	case []int16:
		err = nr.Read(&d)
		data = d
	case []uint16:
		err = nr.Read(&d)
		data = d
	case []int32:
		err = nr.Read(&d)
		data = d
	case []uint32:
		err = nr.Read(&d)
		data = d
	case []int64:
		err = nr.Read(&d)
		data = d
	case []uint64:
		err = nr.Read(&d)
		data = d
	case []float32:
		err = nr.Read(&d)
		data = d
	case []float64:
		err = nr.Read(&d)
		data = d
	}
	if err != nil {
		return Array{}, err
	}
	arr.Data = data

	if descr.Fortran && len(shape) > 1 {
		arr.Data = toCOrder(arr.Data, shape)
	}
	return arr, nil
}

// Float32s converts any numeric dtype to float32.
func (a Array) Float32s() ([]float32, error) {
	switch d := a.Data.(type) {
	case []float32:
		return append([]float32(nil), d...), nil
	case []float64:
		return convert[float64, float32](d), nil
	case []int8:
		return convert[int8, float32](d), nil
	case []uint8:
		return convert[uint8, float32](d), nil
	case []int16:
		return convert[int16, float32](d), nil
	case []uint16:
		return convert[uint16, float32](d), nil
	case []int32:
		return convert[int32, float32](d), nil
	case []uint32:
		return convert[uint32, float32](d), nil
	case []int64:
		return convert[int64, float32](d), nil
	case []uint64:
		return convert[uint64, float32](d), nil
	case []bool:
		y := make([]float32, len(d))
		for i, b := range d {
			if b {
				y[i] = 1
			}
		}
		return y, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDType, a.DType)
}

// Int64s returns integer (or bool) labels without reinterpretation.
func (a Array) Int64s() ([]int64, error) {
	switch d := a.Data.(type) {
	case []int64:
		return append([]int64(nil), d...), nil
	case []int8:
		return convert[int8, int64](d), nil
	case []uint8:
		return convert[uint8, int64](d), nil
	case []int16:
		return convert[int16, int64](d), nil
	case []uint16:
		return convert[uint16, int64](d), nil
	case []int32:
		return convert[int32, int64](d), nil
	case []uint32:
		return convert[uint32, int64](d), nil
	case []uint64:
		y := make([]int64, len(d))
		for i, v := range d {
			if v > 1<<63-1 {
				return nil, fmt.Errorf("%w: %d", ErrOverflow, v)
			}
			y[i] = int64(v)
		}
		return y, nil
	case []bool:
		y := make([]int64, len(d))
		for i, b := range d {
			if b {
				y[i] = 1
			}
		}
		return y, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotInteger, a.DType)
}

type number interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

func convert[X, Y number](xs []X) []Y {
	ys := make([]Y, len(xs))
	for i, x := range xs {
		ys[i] = Y(x)
	}
	return ys
}

func toCOrder(data any, shape []int) any {
	switch d := data.(type) {
	case []bool:
		return reorder(d, shape)
	case []int8:
		return reorder(d, shape)
	case []uint8:
		return reorder(d, shape)
	case []int16:
		return reorder(d, shape)
	case []uint16:
		return reorder(d, shape)
	case []int32:
		return reorder(d, shape)
	case []uint32:
		return reorder(d, shape)
	case []int64:
		return reorder(d, shape)
	case []uint64:
		return reorder(d, shape)
	case []float32:
		return reorder(d, shape)
	case []float64:
		return reorder(d, shape)
	}
	return data
}

// reorder copies column-major src into row-major order.
func reorder[T any](src []T, shape []int) []T {
	dst := make([]T, len(src))
	ndim := len(shape)
	fStrides := make([]int, ndim)
	stride := 1
	for i := 0; i < ndim; i++ {
		fStrides[i] = stride
		stride *= shape[i]
	}

	idx := make([]int, ndim)
	for c := range dst {
		f := 0
		for i := 0; i < ndim; i++ {
			f += idx[i] * fStrides[i]
		}
		dst[c] = src[f]
		for i := ndim - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < shape[i] {
				break
			}
			idx[i] = 0
		}
	}
	return dst
}

// Header is the dtype and shape of a file, read without its data.
type Header struct {
	DType   string
	Shape   []int
	Fortran bool
}

func ReadHeader(r io.Reader) (Header, error) {
	nr, err := npyio.NewReader(r)
	if err != nil {
		return Header{}, err
	}
	descr := nr.Header.Descr
	return Header{
		DType:   descr.Type,
		Shape:   append([]int(nil), descr.Shape...),
		Fortran: descr.Fortran,
	}, nil
}
