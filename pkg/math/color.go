package math

// Color is a linear RGB colour with components in [0, 1].
type Color struct {
	R, G, B float32
}

// Common colours used by the scene.
var (
	Black     = Color{0, 0, 0}
	White     = Color{1, 1, 1}
	LightBlue = Color{0.68, 0.85, 1}
	Yellow    = Color{1, 0.85, 0.2}
	Orange    = Color{1, 0.4, 0.05}
	DarkGray  = Color{0.08, 0.08, 0.1}
)

// Hex builds a colour from a 0xRRGGBB literal.
func Hex(rgb uint32) Color {
	return Color{
		R: float32((rgb>>16)&0xff) / 255,
		G: float32((rgb>>8)&0xff) / 255,
		B: float32(rgb&0xff) / 255,
	}
}

// Lerp blends toward other. t=0 yields c and t=1 yields other exactly.
func (c Color) Lerp(other Color, t float32) Color {
	return Color{Lerp(c.R, other.R, t), Lerp(c.G, other.G, t), Lerp(c.B, other.B, t)}
}

// Array returns the components for uniform upload.
func (c Color) Array() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}
