package extract

// TextExtractor converts a raw uploaded file into plain text. Implementations
// must degrade gracefully: malformed files of a recognized type yield partial
// or empty text, never an error.
type TextExtractor interface {
	Extract(filename string, data []byte) string
}
