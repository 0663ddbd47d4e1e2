package colors

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/mandelsoft/ldraw/pkg/ldraw/command"
	"github.com/mandelsoft/ldraw/pkg/ldraw/diag"
)

// ConfigFile is the standard palette declaration file of an
// LDraw library.
const ConfigFile = "LDConfig.ldr"

var (
	ErrUnknownColor = errors.New("unknown color")
	ErrIllegalColor = errors.New("illegal direct color")
)

// Table is the shared palette. It is built once before any import
// and only read afterwards, so it needs no locking.
type Table struct {
	entries map[int]*Entry
	order   []int
}

func NewTable(entries ...*Entry) *Table {
	t := &Table{entries: map[int]*Entry{}}
	t.entries[Invalid] = invalidEntry()
	for _, e := range entries {
		t.add(e)
	}
	return t
}

func (t *Table) add(e *Entry) bool {
	if e.ID == Invalid || IsDirect(e.ID) || e.ID >= DirectLimit {
		return false
	}
	if _, ok := t.entries[e.ID]; !ok {
		t.order = append(t.order, e.ID)
	}
	t.entries[e.ID] = e
	return true
}

// Load reads all !COLOUR declarations of a configuration
// resource. Malformed declarations are reported and skipped.
func (t *Table) Load(name string, r io.Reader, reporter diag.Reporter) error {
	if reporter == nil {
		reporter = diag.Discard
	}
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	no := 0
	count := 0
	for lines.Scan() {
		no++
		line := lines.Text()
		if command.Classify(line) != command.Colour {
			continue
		}
		e, err := ParseColour(line, t.ResolveEdge)
		if err != nil {
			if e == nil {
				log.Warn("unable to parse !COLOUR definition in {{source}} line {{line}}", "source", name, "line", no, "error", err)
				reporter.Report(name, no, fmt.Sprintf("unable to parse !COLOUR definition: %s", err))
				continue
			}
			log.Warn("colour {{code}} in {{source}}: {{error}}", "code", e.ID, "source", name, "error", err)
			reporter.Report(name, no, err.Error())
		}
		if !t.add(e) {
			reporter.Report(name, no, fmt.Sprintf("reserved color code %d", e.ID))
			continue
		}
		count++
	}
	if err := lines.Err(); err != nil {
		return fmt.Errorf("unable to read colors from %s line %d: %w", name, no, err)
	}
	log.Debug("loaded {{count}} colors from {{source}}", "count", count, "source", name)
	return nil
}

// ResolveEdge resolves an EDGE reference to the fill of a known color.
func (t *Table) ResolveEdge(id int) (color.NRGBA, bool) {
	if IsDirect(id) {
		return Direct(id).Fill, true
	}
	if e, ok := t.entries[id]; ok && id != Invalid {
		return e.Fill, true
	}
	return color.NRGBA{}, false
}

// Lookup resolves a color id without side effects. For unknown
// or illegal ids the invalid entry is returned together with an
// error.
func (t *Table) Lookup(id int) (*Entry, error) {
	switch {
	case id < DirectBase:
		if e, ok := t.entries[id]; ok && id != Invalid {
			return e, nil
		}
		return t.entries[Invalid], fmt.Errorf("%w: %d", ErrUnknownColor, id)
	case id < DirectLimit:
		return Direct(id), nil
	default:
		return t.entries[Invalid], fmt.Errorf("%w: %d", ErrIllegalColor, id)
	}
}

// Get resolves a color id. Unknown ids are logged and reported
// once to the given sites, the invalid entry is returned then.
func (t *Table) Get(id int, sites ...diag.Site) *Entry {
	e, err := t.Lookup(id)
	if err != nil {
		log.Warn("{{error}}", "error", err)
		for _, s := range sites {
			s.Warn("%s", err)
		}
	}
	return e
}

func (t *Table) Fill(id int, sites ...diag.Site) color.NRGBA {
	return t.Get(id, sites...).Fill
}

func (t *Table) EdgeOf(id int, sites ...diag.Site) color.NRGBA {
	return t.Get(id, sites...).Edge
}

// IsValid reports whether the id is a palette index or a direct color.
func (t *Table) IsValid(id int) bool {
	_, err := t.Lookup(id)
	return err == nil
}

// Entries returns the declared entries in declaration order.
// The invalid entry is not included.
func (t *Table) Entries() []*Entry {
	r := make([]*Entry, 0, len(t.order))
	for _, id := range t.order {
		r = append(r, t.entries[id])
	}
	return r
}

func (t *Table) Len() int {
	return len(t.order)
}
