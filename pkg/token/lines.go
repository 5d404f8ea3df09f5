package token

import "sort"

// LineIndex maps byte offsets in a source text to line/column positions.
// Line terminators are \n, \r\n, \r, U+2028 and U+2029, as in ECMAScript.
type LineIndex struct {
	starts []int // byte offset of the first byte of each line
	size   int
}

// NewLineIndex scans src once and records where every line starts.
func NewLineIndex(src string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		case 0xE2:
			// U+2028 and U+2029 encode as E2 80 A8 / E2 80 A9.
			if i+2 < len(src) && src[i+1] == 0x80 && (src[i+2] == 0xA8 || src[i+2] == 0xA9) {
				i += 2
				starts = append(starts, i+1)
			}
		}
	}
	return &LineIndex{starts: starts, size: len(src)}
}

// LineCount returns the number of lines in the indexed source.
func (li *LineIndex) LineCount() int {
	return len(li.starts)
}

// Position converts a 0-based byte offset into a Position.
// Offsets outside the source are clamped to its bounds.
func (li *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > li.size {
		offset = li.size
	}
	line := sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	}) - 1
	return Position{
		Line:   line + 1,
		Column: offset - li.starts[line] + 1,
		Offset: offset,
	}
}

// Offset converts a 1-based line/column pair back into a byte offset.
func (li *LineIndex) Offset(line, column int) int {
	if line < 1 {
		return 0
	}
	if line > len(li.starts) {
		return li.size
	}
	off := li.starts[line-1] + column - 1
	if off > li.size {
		return li.size
	}
	if off < 0 {
		return 0
	}
	return off
}

// Span converts a half-open byte range [start, end) into a Span.
func (li *LineIndex) Span(start, end int) Span {
	if end < start {
		end = start
	}
	return Span{Start: li.Position(start), End: li.Position(end)}
}
