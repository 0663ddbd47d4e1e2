package geometry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mandelsoft/ldraw/pkg/ldraw/colors"
	"github.com/mandelsoft/ldraw/pkg/ldraw/command"
	"github.com/mandelsoft/ldraw/pkg/scanner"
)

var (
	ErrTooFewFields    = errors.New("too few fields")
	ErrTrailingFields  = errors.New("unexpected trailing fields")
	ErrMalformedNumber = errors.New("invalid number")
	ErrInvalidColor    = errors.New("invalid color specification")
	ErrLineType        = errors.New("unexpected line type")
)

// ParseColorID parses the color field of a geometry line. Decimal
// values and other 0x prefixed hexadecimal values are palette
// indices. A 0x2 prefix marks a direct color: the remainder is the
// decimal encoded packed RGB value added to DirectBase.
func ParseColorID(s string) (int, error) {
	var (
		v   int64
		err error
	)
	switch {
	case len(s) >= 3 && (strings.HasPrefix(s, "0x2") || strings.HasPrefix(s, "0X2")):
		v, err = strconv.ParseInt(s[3:], 10, 32)
		if err == nil && v < 0 {
			err = ErrInvalidColor
		}
		v += colors.DirectBase
	case len(s) > 2 && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")):
		v, err = strconv.ParseInt(s[2:], 16, 32)
	default:
		v, err = strconv.ParseInt(s, 10, 32)
	}
	if err != nil {
		return colors.Invalid, fmt.Errorf("%w: %s", ErrInvalidColor, s)
	}
	return int(v), nil
}

// FormatColorID is the inverse of ParseColorID.
func FormatColorID(id int) string {
	if colors.IsDirect(id) {
		return fmt.Sprintf("0x2%d", id-colors.DirectBase)
	}
	return strconv.Itoa(id)
}

type decoder struct {
	scanner.Scanner
	line string
}

func newDecoder(line string, kind command.Kind, typ string) (*decoder, error) {
	d := &decoder{Scanner: scanner.NewScanner(line), line: line}
	f, ok := d.Next()
	if !ok || f != typ {
		return nil, fmt.Errorf("%w: %s expected: %s", ErrLineType, kind, strings.TrimSpace(line))
	}
	return d, nil
}

func (d *decoder) field() (string, error) {
	f, ok := d.Next()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTooFewFields, strings.TrimSpace(d.line))
	}
	return f, nil
}

func (d *decoder) color() (int, error) {
	f, err := d.field()
	if err != nil {
		return 0, err
	}
	return ParseColorID(f)
}

func (d *decoder) number() (float64, error) {
	f, err := d.field()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(f, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrMalformedNumber, f)
	}
	return v, nil
}

func (d *decoder) vectors(pts []Vector) error {
	for i := range pts {
		var c [3]float64
		for j := range c {
			v, err := d.number()
			if err != nil {
				return err
			}
			c[j] = v
		}
		pts[i] = Vector{c[0], c[1], c[2]}
	}
	return nil
}

func (d *decoder) end() error {
	if !d.Done() {
		return fmt.Errorf("%w: %s", ErrTrailingFields, d.Rest())
	}
	return nil
}

// DecodeReference decodes a part reference (line type 1). The
// trailing identifier is kept verbatim and may contain blanks.
func DecodeReference(line string, invert bool) (*PartReference, error) {
	d, err := newDecoder(line, command.Reference, "1")
	if err != nil {
		return nil, err
	}
	c, err := d.color()
	if err != nil {
		return nil, err
	}
	var v [12]float64
	for i := range v {
		v[i], err = d.number()
		if err != nil {
			return nil, err
		}
	}
	target := d.Rest()
	if target == "" {
		return nil, fmt.Errorf("%w: missing part identifier: %s", ErrTooFewFields, strings.TrimSpace(line))
	}
	return &PartReference{Color: c, Transform: NewTransform(v), Target: target, Invert: invert}, nil
}

// DecodeLine decodes an edge line (line type 2).
func DecodeLine(line string) (*Line, error) {
	d, err := newDecoder(line, command.Line, "2")
	if err != nil {
		return nil, err
	}
	p := &Line{}
	if p.Color, err = d.color(); err != nil {
		return nil, err
	}
	if err = d.vectors(p.Points[:]); err != nil {
		return nil, err
	}
	return p, d.end()
}

// DecodeTriangle decodes a triangle (line type 3).
func DecodeTriangle(line string, invert bool) (*Triangle, error) {
	d, err := newDecoder(line, command.Triangle, "3")
	if err != nil {
		return nil, err
	}
	p := &Triangle{Invert: invert}
	if p.Color, err = d.color(); err != nil {
		return nil, err
	}
	if err = d.vectors(p.Points[:]); err != nil {
		return nil, err
	}
	return p, d.end()
}

// DecodeQuad decodes a quadrilateral (line type 4).
func DecodeQuad(line string, invert bool) (*Quad, error) {
	d, err := newDecoder(line, command.Quad, "4")
	if err != nil {
		return nil, err
	}
	p := &Quad{Invert: invert}
	if p.Color, err = d.color(); err != nil {
		return nil, err
	}
	if err = d.vectors(p.Points[:]); err != nil {
		return nil, err
	}
	return p, d.end()
}

// DecodeAuxLine decodes an optional line (line type 5).
func DecodeAuxLine(line string) (*AuxLine, error) {
	d, err := newDecoder(line, command.AuxLine, "5")
	if err != nil {
		return nil, err
	}
	p := &AuxLine{}
	if p.Color, err = d.color(); err != nil {
		return nil, err
	}
	if err = d.vectors(p.Points[:]); err != nil {
		return nil, err
	}
	if err = d.vectors(p.Controls[:]); err != nil {
		return nil, err
	}
	return p, d.end()
}

// Decode dispatches a classified geometry line to its decoder.
// The invert flag is ignored for line kinds without orientation.
func Decode(kind command.Kind, line string, invert bool) (Primitive, error) {
	switch kind {
	case command.Reference:
		return DecodeReference(line, invert)
	case command.Line:
		return DecodeLine(line)
	case command.Triangle:
		return DecodeTriangle(line, invert)
	case command.Quad:
		return DecodeQuad(line, invert)
	case command.AuxLine:
		return DecodeAuxLine(line)
	default:
		return nil, fmt.Errorf("%w: %s is no geometry", ErrLineType, kind)
	}
}
