package driven

import "context"

// Normaliser extracts plain text from a corpus file.
// Only PDF is currently supported; the interface keeps the build
// service independent of the extraction library.
type Normaliser interface {
	// Extensions returns the lower-case file extensions this
	// normaliser handles, including the leading dot.
	Extensions() []string

	// Extract returns the plain text and page count of the file at
	// path.
	Extract(ctx context.Context, path string) (text string, pages int, err error)
}
