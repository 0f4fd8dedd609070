package classes

import "github.com/yolokit/go-annotate/result"

// palette holds the colors given to classes that declare none, indexed by
// the class position
var palette = [][3]uint8{
	{255, 56, 56},   // #FF3838
	{255, 157, 151}, // #FF9D97
	{255, 112, 31},  // #FF701F
	{255, 178, 29},  // #FFB21D
	{207, 210, 49},  // #CFD231
	{72, 249, 10},   // #48F90A
	{146, 204, 23},  // #92CC17
	{61, 219, 134},  // #3DDB86
	{26, 147, 52},   // #1A9334
	{0, 212, 187},   // #00D4BB
	{44, 153, 168},  // #2C99A8
	{0, 194, 255},   // #00C2FF
	{52, 69, 147},   // #344593
	{100, 115, 255}, // #6473FF
	{0, 24, 236},    // #0018EC
	{132, 56, 255},  // #8438FF
	{82, 0, 133},    // #520085
	{203, 56, 255},  // #CB38FF
	{255, 149, 200}, // #FF95C8
	{255, 55, 199},  // #FF37C7
}

// PaletteColor returns the default color for the class at position i
func PaletteColor(i int) result.Color {
	if i < 0 {
		i = -i
	}

	c := palette[i%len(palette)]

	return result.RGB(c[0], c[1], c[2])
}
