package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrEmptyFamily is returned when a font is registered without a name.
	ErrEmptyFamily = errors.New("text: empty font family name")

	// ErrInvalidSize is returned for a non-positive font size or scale.
	ErrInvalidSize = errors.New("text: font size must be positive")

	// ErrNoFont is returned when neither the requested family nor the
	// registry fallback resolves to a font.
	ErrNoFont = errors.New("text: no font available")
)
