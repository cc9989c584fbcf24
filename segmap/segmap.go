// Package segmap holds integer label maps that travel alongside image slices.
package segmap

import (
	"fmt"
	"slices"
)

// Map is a 2-D label array. DType records the on-disk npy dtype so labels
// can be written back unchanged.
type Map struct {
	Rows   int
	Cols   int
	Stride int
	Data   []int64
	DType  string
}

func NewZeros(rows, cols int, dtype string) Map {
	return Map{Rows: rows, Cols: cols, Stride: cols, Data: make([]int64, rows*cols), DType: dtype}
}

func NewZerosLike(m Map) Map {
	return NewZeros(m.Rows, m.Cols, m.DType)
}

func FromInt64s(rows, cols int, data []int64, dtype string) (Map, error) {
	if rows*cols != len(data) {
		return Map{}, fmt.Errorf("segmap: %dx%d needs %d labels, got %d", rows, cols, rows*cols, len(data))
	}
	return Map{Rows: rows, Cols: cols, Stride: cols, Data: data, DType: dtype}, nil
}

func (m Map) At(row, col int) int {
	return row*m.Stride + col
}

func (m Map) Get(row, col int) int64 {
	return m.Data[m.At(row, col)]
}

func (m Map) Clone() Map {
	m.Data = slices.Clone(m.Data)
	return m
}

// Labels returns the distinct labels in ascending order.
func (m Map) Labels() []int64 {
	seen := map[int64]struct{}{}
	for r := 0; r < m.Rows; r++ {
		for _, e := range m.Data[r*m.Stride : r*m.Stride+m.Cols] {
			seen[e] = struct{}{}
		}
	}
	labels := make([]int64, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	slices.Sort(labels)
	return labels
}

// Histogram counts pixels per label.
func (m Map) Histogram() map[int64]int {
	h := map[int64]int{}
	for r := 0; r < m.Rows; r++ {
		for _, e := range m.Data[r*m.Stride : r*m.Stride+m.Cols] {
			h[e]++
		}
	}
	return h
}

// ExpandDims inserts a leading channel axis of size 1.
func (m Map) ExpandDims() Volume {
	v := NewVolume(1, m.Rows, m.Cols, m.DType)
	for r := 0; r < m.Rows; r++ {
		copy(v.Data[r*v.RowStride:(r+1)*v.RowStride], m.Data[r*m.Stride:r*m.Stride+m.Cols])
	}
	return v
}

// OnImage is a label map bound to the shape of the image it annotates.
type OnImage struct {
	arr   Map
	Shape []int
}

func NewOnImage(arr Map, shape []int) (*OnImage, error) {
	if len(shape) < 2 {
		return nil, fmt.Errorf("segmap: image shape %v has fewer than 2 dims", shape)
	}
	return &OnImage{arr: arr, Shape: slices.Clone(shape)}, nil
}

// Arr returns the wrapped label array.
func (s *OnImage) Arr() Map {
	return s.arr
}

// Volume is a channel-first label tensor (C, H, W).
type Volume struct {
	Channels      int
	Rows          int
	Cols          int
	ChannelStride int
	RowStride     int
	Data          []int64
	DType         string
}

func NewVolume(chs, rows, cols int, dtype string) Volume {
	return Volume{
		Channels:      chs,
		Rows:          rows,
		Cols:          cols,
		ChannelStride: rows * cols,
		RowStride:     cols,
		Data:          make([]int64, chs*rows*cols),
		DType:         dtype,
	}
}

func (v Volume) Shape() []int {
	return []int{v.Channels, v.Rows, v.Cols}
}

func (v Volume) At(ch, row, col int) int {
	return ch*v.ChannelStride + row*v.RowStride + col
}

func (v Volume) Squeeze() (Map, error) {
	if v.Channels != 1 {
		return Map{}, fmt.Errorf("segmap: cannot squeeze %d channels", v.Channels)
	}
	return Map{Rows: v.Rows, Cols: v.Cols, Stride: v.RowStride, Data: v.Data[:v.ChannelStride], DType: v.DType}, nil
}
