package revparse

import (
	"bufio"
	"io"
	"strings"
)

// Quote wraps s in single quotes so a POSIX shell reads it back verbatim.
// An embedded single quote closes the quoting, is escaped and reopens it.
func Quote(s string) string {
	return "'" + strings.Replace(s, "'", `'\''`, -1) + "'"
}

// printer renders results according to the mode and counts the revisions
// it shows.
type printer struct {
	w    *bufio.Writer
	mode *Mode
	revs int
}

func newPrinter(w io.Writer, m *Mode) *printer {
	return &printer{w: bufio.NewWriter(w), mode: m}
}

func (p *printer) show(results ...Classified) {
	for _, r := range results {
		switch r := r.(type) {
		case Revision:
			p.showRevision(r)
		case Literal:
			if p.wants(r) {
				p.print(r.Text)
			}
		}
	}
}

func (p *printer) showRevision(r Revision) {
	if p.mode.NoRevs {
		return
	}

	p.revs++
	if r.Polarity != p.mode.Polarity {
		p.w.WriteByte('^')
	}

	if p.mode.Symbolic && r.Name != "" {
		p.print(r.Name)
		return
	}

	p.print(r.Hash.String())
}

// wants applies the output filters to a literal.
func (p *printer) wants(l Literal) bool {
	m := p.mode
	switch l.Kind {
	case RevisionFlag:
		return !m.NoFlags && !m.NoRevs
	case Flag:
		return !m.NoFlags
	default:
		return !m.FlagsOnly && !m.RevsOnly
	}
}

func (p *printer) print(s string) {
	if p.mode.Quote {
		p.w.WriteString(Quote(s))
		p.w.WriteByte(' ')
		return
	}

	p.w.WriteString(s)
	p.w.WriteByte('\n')
}

// raw writes a line as is, bypassing filters and quoting.
func (p *printer) raw(line string) {
	p.w.WriteString(line)
	p.w.WriteByte('\n')
}

func (p *printer) Flush() error {
	return p.w.Flush()
}
