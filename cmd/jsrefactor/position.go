package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/jsrefactor/internal/buffer"
	"github.com/bethropolis/jsrefactor/internal/types"
)

// resolveSelection turns the position flags into a selection. The flags
// are mutually exclusive; none set means offset 0.
func resolveSelection(buf buffer.Buffer, offset int, at, sel string) (types.Selection, error) {
	size := len(buf.Bytes())
	switch {
	case sel != "":
		start, end, err := parsePair(sel)
		if err != nil {
			return types.Selection{}, fmt.Errorf("--select: %w", err)
		}
		if start < 0 || end > size || start > end {
			return types.Selection{}, fmt.Errorf("--select: %d:%d outside document of %d bytes", start, end, size)
		}
		return types.Selection{Anchor: start, Head: end}, nil
	case at != "":
		line, col, err := parsePair(at)
		if err != nil {
			return types.Selection{}, fmt.Errorf("--at: %w", err)
		}
		if line < 1 || col < 1 || line > buf.LineCount() {
			return types.Selection{}, fmt.Errorf("--at: %d:%d outside document", line, col)
		}
		return types.Cursor(buf.PositionToOffset(types.Position{Line: line - 1, Col: col - 1})), nil
	default:
		if offset < 0 || offset > size {
			return types.Selection{}, fmt.Errorf("--offset: %d outside document of %d bytes", offset, size)
		}
		return types.Cursor(offset), nil
	}
}

// parsePair parses "A:B" into two integers.
func parsePair(s string) (int, int, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("expected A:B, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", a)
	}
	y, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", b)
	}
	return x, y, nil
}
