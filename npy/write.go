package npy

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var magic = []byte("\x93NUMPY")

const headerAlign = 64

func dtypeOf(data any) (string, error) {
	switch data.(type) {
	case []bool:
		return "|b1", nil
	case []int8:
		return "|i1", nil
	case []uint8:
		return "|u1", nil
	case []int16:
		return "<i2", nil
	case []uint16:
		return "<u2", nil
	case []int32:
		return "<i4", nil
	case []uint32:
		return "<u4", nil
	case []int64:
		return "<i8", nil
	case []uint64:
		return "<u8", nil
	case []float32:
		return "<f4", nil
	case []float64:
		return "<f8", nil
	}
	return "", fmt.Errorf("%w: %T", ErrUnsupportedDType, data)
}

func shapeString(shape []int) string {
	parts := make([]string, len(shape))
	for i, s := range shape {
		parts[i] = strconv.Itoa(s)
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Write encodes arr as a version 1.0 .npy file in little-endian C order.
// The dtype is taken from the Go type of arr.Data.
func Write(w io.Writer, arr Array) error {
	dtype, err := dtypeOf(arr.Data)
	if err != nil {
		return err
	}
	if n := sliceLen(arr.Data); n != arr.N() {
		return fmt.Errorf("npy: shape %v holds %d values, data has %d", arr.Shape, arr.N(), n)
	}

	header := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': %s, }", dtype, shapeString(arr.Shape))
	// magic(6) + version(2) + header length(2) + header + '\n'
	total := len(magic) + 4 + len(header) + 1
	if pad := total % headerAlign; pad != 0 {
		header += strings.Repeat(" ", headerAlign-pad)
	}
	header += "\n"

	var buf bytes.Buffer
	buf.Write(magic)
	buf.Write([]byte{1, 0})
	if err := binary.Write(&buf, binary.LittleEndian, uint16(len(header))); err != nil {
		return err
	}
	buf.WriteString(header)
	if err := binary.Write(&buf, binary.LittleEndian, arr.Data); err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}

func sliceLen(data any) int {
	switch d := data.(type) {
	case []bool:
		return len(d)
	case []int8:
		return len(d)
	case []uint8:
		return len(d)
	case []int16:
		return len(d)
	case []uint16:
		return len(d)
	case []int32:
		return len(d)
	case []uint32:
		return len(d)
	case []int64:
		return len(d)
	case []uint64:
		return len(d)
	case []float32:
		return len(d)
	case []float64:
		return len(d)
	}
	return -1
}

// Read2D reads a file and requires a 2-D shape.
func Read2D(r io.Reader) (Array, error) {
	arr, err := Read(r)
	if err != nil {
		return Array{}, err
	}
	if !arr.Is2D() {
		return Array{}, fmt.Errorf("%w: shape %v", ErrNot2D, arr.Shape)
	}
	return arr, nil
}
