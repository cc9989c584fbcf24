package tensor3d

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/blas/blas32"
)

// General is a channel-first float32 tensor (C, H, W).
type General struct {
	Channels      int
	Rows          int
	Cols          int
	ChannelStride int
	RowStride     int
	Data          []float32
}

func NewZeros(chs, rows, cols int) General {
	rowStride := cols
	chStride := rows * rowStride
	n := chs * chStride
	return General{
		Channels:      chs,
		Rows:          rows,
		Cols:          cols,
		ChannelStride: chStride,
		RowStride:     rowStride,
		Data:          make([]float32, n),
	}
}

func NewZerosLike(gen General) General {
	return NewZeros(gen.Channels, gen.Rows, gen.Cols)
}

// FromGeneral inserts a leading channel axis of size 1.
func FromGeneral(gen blas32.General) General {
	y := NewZeros(1, gen.Rows, gen.Cols)
	for r := 0; r < gen.Rows; r++ {
		copy(y.Data[r*y.RowStride:(r+1)*y.RowStride], gen.Data[r*gen.Stride:r*gen.Stride+gen.Cols])
	}
	return y
}

func (g General) N() int {
	return g.Channels * g.Rows * g.Cols
}

func (g General) Shape() []int {
	return []int{g.Channels, g.Rows, g.Cols}
}

func (g General) Clone() General {
	return General{
		Channels:      g.Channels,
		Rows:          g.Rows,
		Cols:          g.Cols,
		ChannelStride: g.ChannelStride,
		RowStride:     g.RowStride,
		Data:          slices.Clone(g.Data),
	}
}

func (g General) At(ch, row, col int) int {
	return ch*g.ChannelStride + row*g.RowStride + col
}

// Channel returns a view of one channel.
func (g General) Channel(ch int) blas32.General {
	off := ch * g.ChannelStride
	return blas32.General{
		Rows:   g.Rows,
		Cols:   g.Cols,
		Stride: g.RowStride,
		Data:   g.Data[off : off+g.ChannelStride],
	}
}

// Squeeze drops the channel axis of a single-channel tensor.
func (g General) Squeeze() (blas32.General, error) {
	if g.Channels != 1 {
		return blas32.General{}, fmt.Errorf("tensor3d: cannot squeeze %d channels", g.Channels)
	}
	return g.Channel(0), nil
}
