// Package chunker provides sentence-respecting text chunking.
package chunker

import "strings"

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1200

// DefaultOverlap is the default overlap budget in characters. The
// chunker carries the last overlap/5 words of a closed chunk into the
// next one.
const DefaultOverlap = 150

// Chunker splits document text into overlapping, sentence-respecting
// fragments of bounded size.
//
// The packing is greedy and single-pass: sentences accumulate into a
// buffer, and the buffer is closed when the next sentence would push it
// past the size limit. A single sentence longer than the limit still
// becomes its own chunk; there is no hard truncation. The contract is
// determinism for identical input and parameters, not minimal chunk
// count.
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

// WithOverlap sets the overlap budget in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must leave room for new content in each chunk
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Split chunks the text. Empty or whitespace-only input yields no chunks.
func (c *Chunker) Split(text string) []string {
	sentences := splitSentences(text)

	var chunks []string
	var current string

	for _, sentence := range sentences {
		if len(current)+len(sentence) > c.chunkSize && current != "" {
			chunks = append(chunks, strings.TrimSpace(current))
			current = c.overlapTail(current) + " " + sentence
			continue
		}
		if current != "" {
			current += " " + sentence
		} else {
			current = sentence
		}
	}

	if s := strings.TrimSpace(current); s != "" {
		chunks = append(chunks, s)
	}

	return chunks
}

// overlapTail returns the last overlap/5 words of a closed chunk, or
// all of them if there are fewer.
func (c *Chunker) overlapTail(closed string) string {
	words := strings.Fields(closed)
	n := c.overlap / 5
	if len(words) > n {
		words = words[len(words)-n:]
	}
	return strings.Join(words, " ")
}

// splitSentences splits text at whitespace runs that follow
// sentence-terminal punctuation. Each sentence keeps its terminator;
// trailing text without one becomes the final sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	i := 0

	for i < len(text) {
		if isTerminal(text[i]) && i+1 < len(text) && isSpace(text[i+1]) {
			sentences = append(sentences, text[start:i+1])
			i += 2
			for i < len(text) && isSpace(text[i]) {
				i++
			}
			start = i
			continue
		}
		i++
	}

	if start < len(text) {
		sentences = append(sentences, text[start:])
	}

	return sentences
}

func isTerminal(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
