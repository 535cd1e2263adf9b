// Package chunker provides a fixed-size text chunker with overlap.
package chunker

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of overlapping characters between
// consecutive chunks, so a fact near a boundary appears whole in at least one
// chunk.
const DefaultOverlap = 200

// Piece is one chunk of the input text with its location in the original.
type Piece struct {
	// Text is the chunk content. Never empty.
	Text string

	// Start and End are byte offsets into the input, End exclusive.
	Start int
	End   int
}

// Chunker splits text into fixed-size overlapping pieces.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a new chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Split chunks the text. Consecutive pieces share exactly the configured
// overlap, and the pieces cover the input contiguously. Empty input produces
// no pieces, not an error.
func (c *Chunker) Split(text string) []Piece {
	if text == "" {
		return nil
	}

	textLen := len(text)
	step := c.chunkSize - c.overlap

	// Estimate number of pieces
	estimated := (textLen / step) + 1
	pieces := make([]Piece, 0, estimated)

	for start := 0; start < textLen; start += step {
		end := start + c.chunkSize
		if end > textLen {
			end = textLen
		}

		pieces = append(pieces, Piece{
			Text:  text[start:end],
			Start: start,
			End:   end,
		})

		// The final window already reached the end; a further step would
		// produce a piece fully contained in this one.
		if end == textLen {
			break
		}
	}

	return pieces
}
