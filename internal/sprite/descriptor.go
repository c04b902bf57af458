// Package sprite parses sprite-sheet cell descriptors and extracts their
// frames from a decoded texture.
//
// The descriptor format is line-oriented: each cell record is a line starting
// with the cell marker, carrying up to four corner attributes as
// name="x,y" pairs in normalized texture space. Attributes are found by a
// first-occurrence textual scan, deliberately not a structural markup parse.
package sprite

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// cellMarker opens a cell record line (after whitespace trimming).
const cellMarker = "<Cell "

// Point is a 2-D coordinate in normalized [0,1] texture space. The range is
// conventional, not enforced.
type Point struct {
	X, Y float64
}

// Quad is one animation cell's UV footprint: four corner points. Extraction
// uses only TopLeft and BottomRight; TopRight and BottomLeft exist for the
// first-cell synthesis rule.
type Quad struct {
	TopLeft     Point
	TopRight    Point
	BottomLeft  Point
	BottomRight Point
}

// Sheet is an ordered list of cells. Document order is playback order.
// Immutable after parse.
type Sheet struct {
	Cells []Quad
}

// ParseError reports a malformed coordinate pair. It is the only way parsing
// fails; cells with missing attributes are silently dropped instead.
type ParseError struct {
	Line  int    // 1-based source line.
	Value string // The offending attribute value.
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: invalid coordinate pair %q (want two comma-separated numbers)", e.Line, e.Value)
}

// ParseFile reads and parses the descriptor at path.
func ParseFile(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// Parse scans text line by line for cell records. A cell is emitted only when
// all four corners resolve: either all four attributes are present, or
// topLeft is synthesized from topRight.y and bottomLeft.x (the first cell of
// a sheet commonly omits it). Incomplete cells are dropped without error.
func Parse(text string) (*Sheet, error) {
	sheet := &Sheet{}
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, cellMarker) {
			continue
		}
		quad, ok, err := parseCellLine(line, i+1)
		if err != nil {
			return nil, err
		}
		if ok {
			sheet.Cells = append(sheet.Cells, quad)
		}
	}
	return sheet, nil
}

// parseCellLine resolves one cell record. ok is false when the cell has too
// few corners to resolve.
func parseCellLine(line string, lineNo int) (Quad, bool, error) {
	var quad Quad

	topLeft, hasTopLeft, err := parseCorner(line, lineNo, "topLeft")
	if err != nil {
		return quad, false, err
	}
	topRight, hasTopRight, err := parseCorner(line, lineNo, "topRight")
	if err != nil {
		return quad, false, err
	}
	bottomLeft, hasBottomLeft, err := parseCorner(line, lineNo, "bottomLeft")
	if err != nil {
		return quad, false, err
	}
	bottomRight, hasBottomRight, err := parseCorner(line, lineNo, "bottomRight")
	if err != nil {
		return quad, false, err
	}

	if !hasTopLeft && hasTopRight && hasBottomLeft {
		topLeft = Point{X: bottomLeft.X, Y: topRight.Y}
		hasTopLeft = true
	}

	if !(hasTopLeft && hasTopRight && hasBottomLeft && hasBottomRight) {
		return quad, false, nil
	}

	quad = Quad{
		TopLeft:     topLeft,
		TopRight:    topRight,
		BottomLeft:  bottomLeft,
		BottomRight: bottomRight,
	}
	return quad, true, nil
}

func parseCorner(line string, lineNo int, name string) (Point, bool, error) {
	value, ok := extractAttr(line, name)
	if !ok {
		return Point{}, false, nil
	}
	p, err := parsePair(value, lineNo)
	if err != nil {
		return Point{}, false, err
	}
	return p, true, nil
}

// extractAttr returns the first name="value" occurrence on the line.
func extractAttr(line, name string) (string, bool) {
	pattern := name + `="`
	start := strings.Index(line, pattern)
	if start < 0 {
		return "", false
	}
	start += len(pattern)
	end := strings.IndexByte(line[start:], '"')
	if end < 0 {
		return "", false
	}
	return line[start : start+end], true
}

// parsePair parses "x,y" into a Point.
func parsePair(value string, lineNo int) (Point, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return Point{}, &ParseError{Line: lineNo, Value: value}
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Point{}, &ParseError{Line: lineNo, Value: value}
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Point{}, &ParseError{Line: lineNo, Value: value}
	}
	return Point{X: x, Y: y}, nil
}
