package mdast

import "strconv"

// Position represents a 1-based line and column in a file.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// SourcePos represents the span a block was parsed from.
// Columns count tab-expanded positions within the line.
type SourcePos struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Start returns the start position.
func (sp SourcePos) Start() Position {
	return Position{Line: sp.StartLine, Column: sp.StartColumn}
}

// End returns the end position.
func (sp SourcePos) End() Position {
	return Position{Line: sp.EndLine, Column: sp.EndColumn}
}

// IsValid returns true if the start position is set.
// The end column may legitimately be zero for blocks closed by an empty line.
func (sp SourcePos) IsValid() bool {
	return sp.StartLine > 0 && sp.StartColumn > 0
}

// IsSingleLine returns true if start and end are on the same line.
func (sp SourcePos) IsSingleLine() bool {
	return sp.StartLine == sp.EndLine
}

// String formats the span as "startLine:startCol-endLine:endCol".
func (sp SourcePos) String() string {
	buf := make([]byte, 0, 16)
	buf = strconv.AppendInt(buf, int64(sp.StartLine), 10)
	buf = append(buf, ':')
	buf = strconv.AppendInt(buf, int64(sp.StartColumn), 10)
	buf = append(buf, '-')
	buf = strconv.AppendInt(buf, int64(sp.EndLine), 10)
	buf = append(buf, ':')
	buf = strconv.AppendInt(buf, int64(sp.EndColumn), 10)
	return string(buf)
}
