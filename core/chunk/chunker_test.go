package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunk(t *testing.T) {
	c := New(3)
	assert.Equal(t, []string{"a b c", "d e"}, c.Chunk(" a b\nc d   e "))
	assert.Nil(t, c.Chunk("   "))
	assert.Equal(t, defaultExcerptWords, New(0).ChunkSize)
}

func TestExcerpt(t *testing.T) {
	c := New(4)
	assert.Equal(t, "Naquele tempo disse Jesus…", c.Excerpt("Naquele tempo disse Jesus aos discípulos"))
	assert.Equal(t, "Eu sou", c.Excerpt("Eu sou"))
	assert.Equal(t, "", c.Excerpt(""))
}

func TestParagraphs(t *testing.T) {
	got := Paragraphs("um\ndois\n\n\n\ntrês\n\n  \n")
	assert.Equal(t, [][]string{{"um", "dois"}, {"três"}}, got)
	assert.Nil(t, Paragraphs(""))
}
