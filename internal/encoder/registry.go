package encoder

import (
	"fmt"
	"path/filepath"
	"strings"
)

// priority is the listing order of formats.
var priority = []string{"png", "tiff", "bmp", "jpeg"}

// aliases maps alternative names and extensions onto format names.
var aliases = map[string]string{
	"jpg": "jpeg",
	"tif": "tiff",
}

// Registry holds the available encoders keyed by format.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry with every built-in encoder.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}
	for _, enc := range []Encoder{PNG(), TIFF(), BMP(), JPEG()} {
		r.encoders[enc.Format()] = enc
	}
	return r
}

func normalize(format string) string {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	if a, ok := aliases[f]; ok {
		return a
	}
	return f
}

// Get returns an encoder for the given format or alias, or nil.
func (r *Registry) Get(format string) Encoder {
	return r.encoders[normalize(format)]
}

// Lookup is Get with an error naming the supported formats.
func (r *Registry) Lookup(format string) (Encoder, error) {
	if enc := r.Get(format); enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("unsupported output format %q (%s)", format, r)
}

// ForPath selects an encoder from a file name's extension.
func (r *Registry) ForPath(path string) (Encoder, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, fmt.Errorf("%s: no file extension to pick a format from", path)
	}
	return r.Lookup(ext)
}

// Available returns all format names in priority order.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range priority {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
