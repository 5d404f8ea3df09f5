package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineIndex_Position(t *testing.T) {
	src := "var a;\nvar b;\r\nlet c;\rconst d;"
	li := NewLineIndex(src)

	assert.Equal(t, 4, li.LineCount())

	tests := []struct {
		name   string
		offset int
		want   Position
	}{
		{"start of file", 0, Position{Line: 1, Column: 1, Offset: 0}},
		{"end of first line", 6, Position{Line: 1, Column: 7, Offset: 6}},
		{"second line", 7, Position{Line: 2, Column: 1, Offset: 7}},
		{"after crlf", 15, Position{Line: 3, Column: 1, Offset: 15}},
		{"after bare cr", 22, Position{Line: 4, Column: 1, Offset: 22}},
		{"clamped negative", -4, Position{Line: 1, Column: 1, Offset: 0}},
		{"clamped past end", 1000, Position{Line: 4, Column: 9, Offset: len(src)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, li.Position(tt.offset))
		})
	}
}

func TestLineIndex_Offset(t *testing.T) {
	li := NewLineIndex("var a;\nvar b;")

	assert.Equal(t, 0, li.Offset(1, 1))
	assert.Equal(t, 11, li.Offset(2, 5))
	assert.Equal(t, 0, li.Offset(0, 3))
	assert.Equal(t, 13, li.Offset(9, 1))

	for _, off := range []int{0, 3, 7, 12} {
		p := li.Position(off)
		assert.Equal(t, off, li.Offset(p.Line, p.Column))
	}
}

func TestLineIndex_UnicodeLineSeparator(t *testing.T) {
	src := "a;\u2028b;"
	li := NewLineIndex(src)

	assert.Equal(t, 2, li.LineCount())
	assert.Equal(t, Position{Line: 2, Column: 1, Offset: 5}, li.Position(5))
}

func TestLineIndex_Span(t *testing.T) {
	li := NewLineIndex("let foo = 1;")

	span := li.Span(4, 7)
	assert.Equal(t, 5, span.Start.Column)
	assert.Equal(t, 8, span.End.Column)
	assert.Equal(t, 3, span.Len())
	assert.True(t, span.Contains(4))
	assert.False(t, span.Contains(7))

	// Inverted ranges collapse to an empty span.
	assert.Equal(t, 0, li.Span(9, 2).Len())
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "3:14", Position{Line: 3, Column: 14}.String())
	assert.Equal(t, "-", Position{}.String())
}
