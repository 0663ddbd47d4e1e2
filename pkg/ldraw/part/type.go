package part

import (
	"fmt"
	"strings"
)

// Type classifies a part file or sub-model container.
type Type int

const (
	Unknown Type = iota
	Official
	Unofficial
	Subpart
	UnofficialSubpart
	Primitive
	UnofficialPrimitive
	Shortcut
	UnofficialShortcut
	Model
	Submodel
	// CustomPart is a container with raw geometry but without a
	// type declaration.
	CustomPart
)

var typeNames = map[Type]string{
	Unknown:             "unknown",
	Official:            "part",
	Unofficial:          "unofficial part",
	Subpart:             "subpart",
	UnofficialSubpart:   "unofficial subpart",
	Primitive:           "primitive",
	UnofficialPrimitive: "unofficial primitive",
	Shortcut:            "shortcut",
	UnofficialShortcut:  "unofficial shortcut",
	Model:               "model",
	Submodel:            "submodel",
	CustomPart:          "custom part",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("type(%d)", int(t))
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

type typeSpec struct {
	official   Type
	unofficial Type
	deprecated bool
}

var typeSpellings = map[string]typeSpec{
	"part":                    {Official, Unofficial, false},
	"subpart":                 {Subpart, UnofficialSubpart, false},
	"primitive":               {Primitive, UnofficialPrimitive, false},
	"48_primitive":            {Primitive, UnofficialPrimitive, false},
	"8_primitive":             {Primitive, UnofficialPrimitive, false},
	"shortcut":                {Shortcut, UnofficialShortcut, false},
	"file":                    {Model, Model, false},
	"model":                   {Model, Model, false},
	"submodel":                {Submodel, Submodel, false},
	"element":                 {Subpart, UnofficialSubpart, true},
	"sub-part":                {Subpart, UnofficialSubpart, true},
	"alias":                   {Official, Unofficial, true},
	"cross-reference":         {Subpart, UnofficialSubpart, true},
	"unofficial_part":         {Unofficial, Unofficial, false},
	"unofficial_subpart":      {UnofficialSubpart, UnofficialSubpart, false},
	"unofficial_primitive":    {UnofficialPrimitive, UnofficialPrimitive, false},
	"unofficial_48_primitive": {UnofficialPrimitive, UnofficialPrimitive, false},
	"unofficial_8_primitive":  {UnofficialPrimitive, UnofficialPrimitive, false},
	"unofficial_shortcut":     {UnofficialShortcut, UnofficialShortcut, false},
}

// ParseType parses a part type declaration line
//
//	0 [Official|Unofficial|Un-official] [LCAD] <Type> ...
//
// Deprecated spellings are mapped and flagged. Unrecognized
// declarations yield Unknown and an error describing the problem.
func ParseType(line string) (Type, bool, error) {
	fields := strings.Fields(line)
	if len(fields) <= 2 {
		return Unknown, false, fmt.Errorf("malformed part type command: %s", strings.TrimSpace(line))
	}
	official := true
	switch strings.ToLower(fields[1]) {
	case "unofficial", "un-official":
		official = false
	}
	typ := fields[2]
	if strings.EqualFold(fields[1], "official") && strings.EqualFold(fields[2], "lcad") {
		if len(fields) < 4 {
			return Unknown, false, fmt.Errorf("malformed part type command: %s", strings.TrimSpace(line))
		}
		typ = fields[3]
	}
	key := strings.ToLower(typ)
	if key == "hi-res" {
		// Hi-Res is a regular primitive spelling, the mixed case
		// Hi-res variant is the obsolete one.
		spec := typeSpec{Primitive, UnofficialPrimitive, typ != "Hi-Res"}
		return spec.pick(official), spec.deprecated, nil
	}
	spec, ok := typeSpellings[key]
	if !ok {
		return Unknown, false, fmt.Errorf("unknown part type %q: %s", typ, strings.TrimSpace(line))
	}
	return spec.pick(official), spec.deprecated, nil
}

func (s typeSpec) pick(official bool) Type {
	if official {
		return s.official
	}
	return s.unofficial
}
