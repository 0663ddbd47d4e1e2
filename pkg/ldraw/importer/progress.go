package importer

import (
	"sync/atomic"
)

// Progress publishes the progress of an import. It may be read
// concurrently to the running import without blocking it.
type Progress struct {
	total    atomic.Int64
	consumed atomic.Int64
	done     atomic.Bool
}

func (p *Progress) setTotal(n int) {
	p.total.Store(int64(n))
}

func (p *Progress) consume() {
	p.consumed.Add(1)
}

func (p *Progress) finish() {
	p.done.Store(true)
}

// Percent returns the completed percentage. It never decreases and
// reaches 100 only after the import has finished.
func (p *Progress) Percent() int {
	if p.done.Load() {
		return 100
	}
	total := p.total.Load()
	if total <= 0 {
		return 0
	}
	v := int(p.consumed.Load() * 100 / total)
	if v > 99 {
		return 99
	}
	return v
}

// Done reports whether the import has finished.
func (p *Progress) Done() bool {
	return p.done.Load()
}
