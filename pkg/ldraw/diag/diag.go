package diag

import (
	"fmt"
	"strings"
	"sync"
)

// Reporter records diagnostics without interrupting the caller.
// A line number of zero means the diagnostic is not related to a
// dedicated line.
type Reporter interface {
	Report(source string, line int, msg string)
}

// Site binds a reporter to a source location.
type Site struct {
	Reporter
	Source string
	Line   int
}

func At(r Reporter, source string, line int) Site {
	return Site{Reporter: r, Source: source, Line: line}
}

func (s Site) Warn(msg string, args ...interface{}) {
	if s.Reporter != nil {
		s.Report(s.Source, s.Line, fmt.Sprintf(msg, args...))
	}
}

type Diagnostic struct {
	Source  string `json:"source"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Line != 0 {
		return fmt.Sprintf("[%s] line# %d> %s", d.Source, d.Line, d.Message)
	}
	return fmt.Sprintf("[%s] >%s", d.Source, d.Message)
}

// Report collects the diagnostics of an import.
// A non-empty report means the import completed with warnings.
type Report struct {
	lock    sync.Mutex
	entries []Diagnostic
	hooks   []func(Diagnostic)
}

var _ Reporter = (*Report)(nil)

func NewReport() *Report {
	return &Report{}
}

// OnReport registers a function called for every new diagnostic.
func (r *Report) OnReport(h func(Diagnostic)) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.hooks = append(r.hooks, h)
}

func (r *Report) Report(source string, line int, msg string) {
	d := Diagnostic{Source: source, Line: line, Message: msg}
	r.lock.Lock()
	r.entries = append(r.entries, d)
	hooks := r.hooks
	r.lock.Unlock()
	for _, h := range hooks {
		h(d)
	}
}

func (r *Report) Reportf(source string, line int, msg string, args ...interface{}) {
	r.Report(source, line, fmt.Sprintf(msg, args...))
}

func (r *Report) Entries() []Diagnostic {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]Diagnostic(nil), r.entries...)
}

func (r *Report) Len() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.entries)
}

func (r *Report) HasWarnings() bool {
	return r.Len() > 0
}

func (r *Report) Reset() {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.entries = nil
}

func (r *Report) String() string {
	var b strings.Builder
	for _, d := range r.Entries() {
		b.WriteString(d.String())
		b.WriteString("\n")
	}
	return b.String()
}

// Discard is a reporter dropping all diagnostics.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Report(string, int, string) {}
