package czml

// Color is a colour property, sampled or constant.
type Color struct {
	*Interpolatable
	Rgba      *Sequence[Rgba]  `json:"rgba,omitempty"`
	Rgbaf     *Sequence[Rgbaf] `json:"rgbaf,omitempty"`
	Reference *string          `json:"reference,omitempty"`
}

// SolidRgba is shorthand for a constant 0-255 colour.
func SolidRgba(r, g, b, a float64) *Color {
	return &Color{Rgba: Constant(Rgba{Red: r, Green: g, Blue: b, Alpha: a})}
}

// SolidRgbaf is shorthand for a constant 0-1 colour.
func SolidRgbaf(r, g, b, a float64) *Color {
	return &Color{Rgbaf: Constant(Rgbaf{Red: r, Green: g, Blue: b, Alpha: a})}
}
