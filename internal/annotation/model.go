package annotation

import "time"

// Color is a highlight color tag.
type Color string

const (
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorPink   Color = "pink"
)

// Valid reports whether c is one of the known highlight colors.
func (c Color) Valid() bool {
	switch c {
	case ColorYellow, ColorGreen, ColorBlue, ColorPink:
		return true
	}
	return false
}

// Highlight is a color-tagged excerpt tied to one reading item.
//
// RangeStart/RangeEnd are carried in the schema but never populated; display
// relies on literal text matching. Offset-based anchoring is an open
// limitation (identical phrases elsewhere in a document are ambiguous).
type Highlight struct {
	ID         string    `yaml:"id"`
	ItemID     string    `yaml:"item_id"`
	Text       string    `yaml:"text"`
	Color      Color     `yaml:"color"`
	CreatedAt  time.Time `yaml:"created_at"`
	Note       string    `yaml:"note,omitempty"`
	RangeStart *int      `yaml:"range_start,omitempty"`
	RangeEnd   *int      `yaml:"range_end,omitempty"`
}
