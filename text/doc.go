// Package text measures and rasterizes single-line labels for easel.
//
// Text is not shaped. A string is NFC-normalized, laid out glyph by glyph
// with the font's advances and kerning, and drawn into an RGBA bitmap that
// the renderer uploads as a texture and blits as one textured quad.
//
// Fonts come from a [Registry] that maps family names to parsed OpenType
// fonts. The default registry carries the Go font family and resolves the
// common web family names (Arial, Helvetica, sans-serif, monospace, ...) to
// it, so labels render the same way on every host without system fonts.
//
// # Example usage
//
//	reg := text.NewRegistry()
//	opts := text.Options{Size: 16, Family: "Arial"}
//	size, err := reg.Measure("Hello", opts)
//	img, err := reg.Rasterize("Hello", opts, color.Black, 2)
//
// Faces are cached per (family, size) in an LRU [Cache].
package text
