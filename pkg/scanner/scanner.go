package scanner

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scanner splits a single line into whitespace separated fields.
// In contrast to strings.Fields it keeps the unconsumed remainder
// of the line accessible, which is required for trailing
// arguments containing blanks (file names, descriptions).
type Scanner interface {
	Next() (string, bool)
	Peek() string
	Rest() string
	Done() bool
	Position() int

	Errorf(msg string, args ...interface{}) error
}

type scanner struct {
	in     string
	offset int
	no     int
}

func NewScanner(in string) Scanner {
	return &scanner{in: in}
}

func (s *scanner) skipBlanks() {
	for s.offset < len(s.in) {
		r, size := utf8.DecodeRuneInString(s.in[s.offset:])
		if !unicode.IsSpace(r) {
			return
		}
		s.offset += size
	}
}

func (s *scanner) scan() (string, int) {
	s.skipBlanks()
	start := s.offset
	end := start
	for end < len(s.in) {
		r, size := utf8.DecodeRuneInString(s.in[end:])
		if unicode.IsSpace(r) {
			break
		}
		end += size
	}
	return s.in[start:end], end
}

// Next returns the next field. The second result is false if the
// line is exhausted.
func (s *scanner) Next() (string, bool) {
	f, end := s.scan()
	if f == "" {
		return "", false
	}
	s.offset = end
	s.no++
	return f, true
}

// Peek returns the next field without consuming it.
func (s *scanner) Peek() string {
	f, _ := s.scan()
	return f
}

// Rest returns the trimmed unconsumed part of the line verbatim
// and consumes it.
func (s *scanner) Rest() string {
	s.skipBlanks()
	r := strings.TrimRightFunc(s.in[s.offset:], unicode.IsSpace)
	s.offset = len(s.in)
	if r != "" {
		s.no++
	}
	return r
}

func (s *scanner) Done() bool {
	return s.Peek() == ""
}

// Position returns the number of consumed fields.
func (s *scanner) Position() int {
	return s.no
}

func (s *scanner) Errorf(msg string, args ...interface{}) error {
	return fmt.Errorf("%q field %d: %s", s.in, s.Position(), fmt.Sprintf(msg, args...))
}
