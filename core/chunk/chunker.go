// Package chunk splits passage text for presentation.
// Paragraphs keep the blank-line structure of the passage; Excerpt gives a
// short word-bounded preview for meta tags and JSON output.
package chunk

import "strings"

const defaultExcerptWords = 30

// Chunker splits text into fixed-size word chunks.
type Chunker struct {
	ChunkSize int // number of words per chunk
}

// New creates a Chunker with the given chunk size.
// Defaults to 30 words if chunkSize <= 0.
func New(chunkSize int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = defaultExcerptWords
	}
	return &Chunker{ChunkSize: chunkSize}
}

// Chunk splits the input text into slices of at most ChunkSize words.
func (c *Chunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	for i := 0; i < len(words); i += c.ChunkSize {
		end := min(i+c.ChunkSize, len(words))
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}

// Excerpt returns the first chunk, marked with an ellipsis when text is longer.
func (c *Chunker) Excerpt(text string) string {
	chunks := c.Chunk(text)
	if len(chunks) == 0 {
		return ""
	}
	if len(chunks) > 1 {
		return chunks[0] + "…"
	}
	return chunks[0]
}

// Paragraphs splits text on blank lines and returns each paragraph as its
// lines. Empty paragraphs are dropped.
func Paragraphs(text string) [][]string {
	var out [][]string
	for _, block := range strings.Split(text, "\n\n") {
		var lines []string
		for _, line := range strings.Split(block, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			out = append(out, lines)
		}
	}
	return out
}
