package extract

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coderag/internal/element"
)

func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestChunkWindowCount(t *testing.T) {
	// 250 lines with a 100-line window: ceil(250/100) = 3 chunks.
	text := numberedLines(250)
	chunks := Chunk("big.txt", text, 100)
	require.Len(t, chunks, 3)

	assert.Equal(t, "1-100", chunks[0].LineRange)
	assert.Equal(t, "101-200", chunks[1].LineRange)
	assert.Equal(t, "201-250", chunks[2].LineRange)
	for _, c := range chunks {
		assert.Equal(t, element.TypeChunk, c.Type)
		assert.Equal(t, "big.txt", c.FilePath)
	}
}

func TestChunkRangesContiguousAndComplete(t *testing.T) {
	text := numberedLines(137)
	chunks := Chunk("f.txt", text, 25)

	next := 1
	total := 0
	for _, c := range chunks {
		parts := strings.SplitN(c.LineRange, "-", 2)
		require.Len(t, parts, 2)
		start, _ := strconv.Atoi(parts[0])
		end, _ := strconv.Atoi(parts[1])
		assert.Equal(t, next, start, "windows must be contiguous")
		assert.LessOrEqual(t, start, end)
		next = end + 1
		total += end - start + 1
	}
	assert.Equal(t, 137, total, "every line covered exactly once")
}

func TestChunkDropsWhitespaceWindows(t *testing.T) {
	// Window 2: ["a","b"], ["","  "], ["c"]. The middle window is dropped
	// but the last window keeps its absolute line numbers.
	text := "a\nb\n\n  \nc"
	chunks := Chunk("f.txt", text, 2)
	require.Len(t, chunks, 2)
	assert.Equal(t, "1-2", chunks[0].LineRange)
	assert.Equal(t, "a\nb", chunks[0].Code)
	assert.Equal(t, "5-5", chunks[1].LineRange)
	assert.Equal(t, "c", chunks[1].Code)
}

func TestChunkEmptyFile(t *testing.T) {
	assert.Empty(t, Chunk("empty.txt", "", 100))
	assert.Empty(t, Chunk("blank.txt", "   \n\t\n", 100))
}

func TestChunkShortFile(t *testing.T) {
	chunks := Chunk("short.txt", "only line", 100)
	require.Len(t, chunks, 1)
	assert.Equal(t, "1-1", chunks[0].LineRange)
	assert.Equal(t, "only line", chunks[0].Code)
	assert.Equal(t, "Code chunk (lines 1-1) from short.txt", chunks[0].Description)
}
