package postprocess

import (
	"fmt"
	"sync"

	"github.com/x448/float16"
)

var (
	f16LookupTable [65536]float32
	f16Once        sync.Once
)

// f16Table returns the float16 to float32 conversion table, computing it on
// first use
func f16Table() *[65536]float32 {
	f16Once.Do(func() {
		for i := range f16LookupTable {
			f16LookupTable[i] = float16.Frombits(uint16(i)).Float32()
		}
	})

	return &f16LookupTable
}

// RowsFromTensor splits a flat output tensor into positional rows of the
// schema width.  The rows share the tensor's backing array
func RowsFromTensor(buf []float32, schema Schema) ([][]float32, error) {

	width := schema.Width()

	if len(buf)%width != 0 {
		return nil, fmt.Errorf("%w: tensor of %d values is not a multiple of %s row width %d",
			ErrRowLength, len(buf), schema, width)
	}

	rows := make([][]float32, 0, len(buf)/width)

	for i := 0; i < len(buf); i += width {
		rows = append(rows, buf[i:i+width:i+width])
	}

	return rows, nil
}

// RowsFromFloat16 converts a flat float16 output tensor, given as raw bits,
// into positional rows of the schema width
func RowsFromFloat16(buf []uint16, schema Schema) ([][]float32, error) {

	table := f16Table()
	f32 := make([]float32, len(buf))

	for i, v := range buf {
		f32[i] = table[v]
	}

	return RowsFromTensor(f32, schema)
}
