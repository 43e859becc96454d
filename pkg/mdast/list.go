package mdast

// ListType distinguishes bullet lists from ordered lists.
type ListType uint8

const (
	// ListBullet is a list introduced by -, + or *.
	ListBullet ListType = iota

	// ListOrdered is a list introduced by a number followed by . or ).
	ListOrdered
)

// String returns the XML attribute value for the list type.
func (t ListType) String() string {
	if t == ListOrdered {
		return "ordered"
	}
	return "bullet"
}

// ListData holds the marker metadata shared by a List and its Items.
type ListData struct {
	// Type is bullet or ordered.
	Type ListType

	// BulletChar is the bullet character ('-', '+', '*'). Zero for ordered lists.
	BulletChar byte

	// Start is the starting number for ordered lists.
	Start int

	// Delimiter is '.' or ')' for ordered lists. Zero for bullet lists.
	Delimiter byte

	// Tight is true unless blank lines separate items or their children.
	Tight bool

	// MarkerOffset is the indentation of the list marker.
	MarkerOffset int

	// Padding is the column width of the marker plus following spaces.
	Padding int
}

// Matches reports whether an item with data other can continue a list with data d.
func (d *ListData) Matches(other *ListData) bool {
	return d.Type == other.Type &&
		d.Delimiter == other.Delimiter &&
		d.BulletChar == other.BulletChar
}

// DelimiterName returns "period" or "paren" for ordered lists, empty otherwise.
func (d *ListData) DelimiterName() string {
	switch d.Delimiter {
	case ')':
		return "paren"
	case '.':
		return "period"
	default:
		return ""
	}
}
