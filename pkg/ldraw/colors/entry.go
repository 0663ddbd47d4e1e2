package colors

import (
	"fmt"
	"image/color"
	"strings"
)

const (
	// Invalid is the id of the sentinel entry used for unknown colors.
	Invalid = -1
	// Current is the inherited main color.
	Current = 16
	// Complement is the inherited edge color.
	Complement = 24

	DirectBase  = 0x2000000
	DirectLimit = 0x3000000
)

var (
	Black = color.NRGBA{A: 255}
	Red   = color.NRGBA{R: 255, A: 255}
)

// Entry is an immutable palette entry.
type Entry struct {
	ID   int         `json:"code"`
	Name string      `json:"name"`
	Fill color.NRGBA `json:"value"`
	Edge color.NRGBA `json:"edge"`
}

// Label returns the human readable name.
func (e *Entry) Label() string {
	return strings.ReplaceAll(e.Name, "_", " ")
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s [code=%d]", e.Label(), e.ID)
}

func (e *Entry) IsDirect() bool {
	return IsDirect(e.ID)
}

// IsDirect reports whether the id encodes a direct RGB color.
func IsDirect(id int) bool {
	return id >= DirectBase && id < DirectLimit
}

// Direct computes the self-describing entry for a direct color id.
// The palette is not consulted.
func Direct(id int) *Entry {
	rgb := id - DirectBase
	return &Entry{
		ID:   id,
		Name: "Direct_color",
		Fill: color.NRGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 255},
		Edge: Black,
	}
}

func invalidEntry() *Entry {
	return &Entry{ID: Invalid, Name: "Invalid/Unknown_color", Fill: Black, Edge: Red}
}

// Hex formats a color as #RRGGBB.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
