package colors

import (
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrInvalidDeclaration = errors.New("invalid !COLOUR specification")
	// ErrUnresolvedEdge is returned together with a usable entry if
	// the EDGE field refers to an unknown color. The entry carries
	// the fallback edge color.
	ErrUnresolvedEdge = errors.New("invalid EDGE color reference")
)

var identifier = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// EdgeResolver resolves an EDGE field given as color index.
type EdgeResolver func(id int) (color.NRGBA, bool)

// ParseColour parses a !COLOUR declaration. The named fields may
// appear in any order, CODE, VALUE and EDGE are mandatory.
func ParseColour(line string, resolve EdgeResolver) (*Entry, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[0] != "0" || !strings.EqualFold(fields[1], "!colour") {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDeclaration, strings.TrimSpace(line))
	}
	name := fields[2]
	if !identifier.MatchString(name) {
		return nil, fmt.Errorf("%w: invalid identifier %q", ErrInvalidDeclaration, name)
	}
	code, ok := value(fields, "code")
	val, vok := value(fields, "value")
	edge, eok := value(fields, "edge")
	if !ok || !vok || !eok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDeclaration, strings.TrimSpace(line))
	}

	alpha := uint8(255)
	if a, ok := value(fields, "alpha"); ok {
		v, err := strconv.ParseUint(a, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid ALPHA value: %s", ErrInvalidDeclaration, a)
		}
		alpha = uint8(v)
	}
	id, err := strconv.Atoi(code)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid CODE value: %s", ErrInvalidDeclaration, code)
	}
	fill, err := parseHex(val, alpha)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid VALUE format: %s", ErrInvalidDeclaration, val)
	}

	e := &Entry{ID: id, Name: name, Fill: fill}
	if strings.HasPrefix(edge, "#") {
		e.Edge, err = parseHex(edge, alpha)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid EDGE format: %s", ErrInvalidDeclaration, edge)
		}
		return e, nil
	}
	ref, err := strconv.Atoi(edge)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid EDGE format: %s", ErrInvalidDeclaration, edge)
	}
	if resolve != nil {
		if c, ok := resolve(ref); ok {
			e.Edge = c
			return e, nil
		}
	}
	e.Edge = Red
	return e, fmt.Errorf("%w: %d", ErrUnresolvedEdge, ref)
}

// value returns the field following the given keyword.
func value(fields []string, key string) (string, bool) {
	for i, f := range fields {
		if strings.EqualFold(f, key) {
			if i < len(fields)-1 {
				return fields[i+1], true
			}
			return "", false
		}
	}
	return "", false
}

func parseHex(s string, alpha uint8) (color.NRGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("#RRGGBB expected")
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.NRGBA{}, err
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: alpha}, nil
}
