package command

import (
	"fmt"
	"strings"

	"github.com/mandelsoft/ldraw/pkg/scanner"
)

// Command is the result of classifying a line.
type Command struct {
	Kind   Kind
	Fields []string
	// Deprecated is set if the line uses an obsolete spelling
	// that is still accepted.
	Deprecated string
}

var metaKeywords = map[string]Kind{
	"!colour":     Colour,
	"file":        MPDFile,
	"nofile":      MPDNoFile,
	"!category":   Category,
	"!keywords":   Keywords,
	"name:":       Name,
	"author:":     Author,
	"step":        Step,
	"!ldraw_org":  FileType,
	"ldraw_org":   FileType,
	"official":    FileType,
	"unofficial":  FileType,
	"un-official": FileType,
}

var lineTypes = map[string]Kind{
	"1": Reference,
	"2": Line,
	"3": Triangle,
	"4": Quad,
	"5": AuxLine,
}

// Parse classifies a raw line. It never fails, unrecognized
// content is classified as Unknown or MetaUnknown.
func Parse(line string) Command {
	fields := strings.Fields(line)
	cmd := Command{Kind: Empty, Fields: fields}
	if len(fields) <= 1 {
		return cmd
	}
	if fields[0] != "0" {
		if k, ok := lineTypes[fields[0]]; ok {
			cmd.Kind = k
		} else {
			cmd.Kind = Unknown
		}
		return cmd
	}
	if fields[1] == "//" {
		cmd.Kind = Comment
		return cmd
	}
	key := strings.ToLower(fields[1])
	if key == "bfc" {
		cmd.Kind, cmd.Deprecated = bfc(fields[2:])
		return cmd
	}
	if k, ok := metaKeywords[key]; ok {
		cmd.Kind = k
	} else {
		cmd.Kind = MetaUnknown
	}
	return cmd
}

// Classify returns the kind of a line.
func Classify(line string) Kind {
	return Parse(line).Kind
}

func bfc(args []string) (Kind, string) {
	certify := false
	for _, a := range args {
		switch strings.ToUpper(a) {
		case "INVERTNEXT":
			if certify {
				return BFCInvertNext, "deprecated command BFC CERTIFY INVERTNEXT"
			}
			return BFCInvertNext, ""
		case "CW":
			return BFCCertifyCW, ""
		case "CCW":
			return BFCCertifyCCW, ""
		case "CERTIFY":
			certify = true
		}
	}
	if certify {
		return BFCCertifyCCW, ""
	}
	return MetaUnknown, ""
}

// Description returns the text of a meta line following the
// leading 0.
func Description(line string) string {
	s := scanner.NewScanner(line)
	if f, ok := s.Next(); !ok || f != "0" {
		return ""
	}
	return s.Rest()
}

// CategoryOf returns the argument of a !CATEGORY line.
func CategoryOf(line string) string {
	return payload(line, 2)
}

// KeywordsOf returns the argument of a !KEYWORDS line.
func KeywordsOf(line string) string {
	return payload(line, 2)
}

// PartNameOf returns the argument of a Name: line.
func PartNameOf(line string) string {
	return payload(line, 2)
}

// AuthorOf returns the argument of an Author: line.
func AuthorOf(line string) string {
	return payload(line, 2)
}

// MPDFileName returns the file name declared by a FILE line.
func MPDFileName(line string) (string, error) {
	name := payload(line, 2)
	if name == "" {
		return "", fmt.Errorf("invalid MPD filename: %s", strings.TrimSpace(line))
	}
	return name, nil
}

func payload(line string, skip int) string {
	s := scanner.NewScanner(line)
	for i := 0; i < skip; i++ {
		if _, ok := s.Next(); !ok {
			return ""
		}
	}
	return s.Rest()
}
