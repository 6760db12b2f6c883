package text

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// DefaultFamily is the family used when a requested family is unknown.
const DefaultFamily = "Go"

// defaultFaceCacheSize bounds the number of (family, size) faces kept open.
const defaultFaceCacheSize = 64

// Registry maps font family names to parsed fonts and caches sized faces.
//
// Family lookups are case-insensitive. Register, Alias, Measure and
// Rasterize are safe for concurrent use. Faces returned by Face are shared
// and are not; see Face.
type Registry struct {
	mu       sync.RWMutex
	fonts    map[string]*opentype.Font
	fallback string

	// faceMu is held while a cached face is used or closed.
	faceMu sync.Mutex
	faces  *Cache[faceKey, font.Face]
}

type faceKey struct {
	family string
	size   float64
}

// NewRegistry returns a registry preloaded with the Go fonts. Common web
// family names are aliased so that descriptors written for a browser
// canvas resolve to a real font.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	builtin := []struct {
		data    []byte
		family  string
		aliases []string
	}{
		{goregular.TTF, DefaultFamily, []string{"Arial", "Helvetica", "sans-serif", "system-ui", "serif", "Times New Roman", "Verdana"}},
		{gobold.TTF, "Go Bold", []string{"Arial Bold", "bold"}},
		{gomono.TTF, "Go Mono", []string{"monospace", "Courier", "Courier New", "Menlo", "Consolas"}},
	}
	for _, b := range builtin {
		// The embedded fonts are known-good; a parse failure is a build defect.
		if err := r.Register(b.family, b.data); err != nil {
			panic(err)
		}
		for _, a := range b.aliases {
			r.Alias(a, b.family)
		}
	}
	return r
}

// NewEmptyRegistry returns a registry without any fonts.
func NewEmptyRegistry() *Registry {
	r := &Registry{
		fonts:    make(map[string]*opentype.Font),
		fallback: strings.ToLower(DefaultFamily),
		faces:    NewCache[faceKey, font.Face](defaultFaceCacheSize),
	}
	r.faces.OnEvict(func(_ faceKey, f font.Face) { _ = f.Close() })
	return r
}

// Register parses OpenType/TrueType data and stores it under family,
// replacing any previous font with that name.
func (r *Registry) Register(family string, data []byte) error {
	if family == "" {
		return ErrEmptyFamily
	}
	if len(data) == 0 {
		return ErrEmptyFontData
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("text: failed to parse font %q: %w", family, err)
	}

	key := strings.ToLower(family)
	r.mu.Lock()
	r.fonts[key] = f
	r.mu.Unlock()

	r.dropFaces(key)
	return nil
}

// Alias makes name resolve to the font registered as family.
// Aliasing an unregistered family is a no-op.
func (r *Registry) Alias(name, family string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.fonts[strings.ToLower(family)]; ok {
		r.fonts[strings.ToLower(name)] = f
	}
}

// SetFallback selects the family used for unknown names.
func (r *Registry) SetFallback(family string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = strings.ToLower(family)
}

// Families returns the registered family names and aliases, lowercased.
func (r *Registry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.fonts))
	for k := range r.fonts {
		out = append(out, k)
	}
	return out
}

// FamilyName returns the name recorded inside the font file resolved for
// family, or "" when it has none.
func (r *Registry) FamilyName(family string) string {
	f, _, err := r.lookup(family)
	if err != nil {
		return ""
	}
	name, err := f.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// Face returns a face for family at size pixels per em, creating and
// caching it on first use. Unknown families use the fallback font.
//
// The face is shared with every other caller and may be closed when it
// leaves the cache. Use it from one goroutine, and only until the next
// call on the Registry.
func (r *Registry) Face(family string, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	f, key, err := r.lookup(family)
	if err != nil {
		return nil, err
	}
	return r.faces.GetOrCreate(faceKey{family: key, size: size}, func() (font.Face, error) {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err != nil {
			return nil, fmt.Errorf("text: create face %q at %v: %w", key, size, err)
		}
		return face, nil
	})
}

// lookup resolves family to a font and the key it is registered under.
func (r *Registry) lookup(family string) (*opentype.Font, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := strings.ToLower(strings.TrimSpace(family))
	if f, ok := r.fonts[key]; ok {
		return f, key, nil
	}
	if f, ok := r.fonts[r.fallback]; ok {
		return f, r.fallback, nil
	}
	return nil, "", fmt.Errorf("%w: %q", ErrNoFont, family)
}

// withFace runs fn on the cached face for family and size. Calls are
// serialized, so a face is never used by two goroutines or closed while fn
// runs.
func (r *Registry) withFace(family string, size float64, fn func(font.Face) error) error {
	r.faceMu.Lock()
	defer r.faceMu.Unlock()
	face, err := r.Face(family, size)
	if err != nil {
		return err
	}
	return fn(face)
}

// dropFaces forgets cached faces of a re-registered family.
func (r *Registry) dropFaces(key string) {
	r.faceMu.Lock()
	defer r.faceMu.Unlock()
	r.faces.RemoveFunc(func(k faceKey) bool { return k.family == key })
}
