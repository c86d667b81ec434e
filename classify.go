package revparse

import (
	"strings"

	"go.uber.org/zap"

	"gopkg.in/src-d/go-revparse.v1/plumbing"
)

// Classified is the outcome of classifying one argument: a Revision, a Literal
// or Suppressed.
type Classified interface {
	isClassified()
}

// Revision is an argument that resolved to an object.
type Revision struct {
	Hash plumbing.Hash
	// Name is the text the revision was given as, shown with --symbolic.
	Name     string
	Polarity Polarity
}

// LiteralKind tells the filters apart which kind of literal they see.
type LiteralKind int8

const (
	// NonRevision is an argument that is neither a flag nor a revision,
	// usually a path.
	NonRevision LiteralKind = iota
	// Flag is an option-shaped argument rev-parse does not know.
	Flag
	// RevisionFlag is a flag meant for revision walkers, see IsRevisionFlag.
	RevisionFlag
)

func (k LiteralKind) String() string {
	switch k {
	case NonRevision:
		return "non-revision"
	case Flag:
		return "flag"
	case RevisionFlag:
		return "revision-flag"
	}

	return "unknown"
}

// Literal is an argument shown as given.
type Literal struct {
	Text string
	Kind LiteralKind
}

// Suppressed is a revision that resolved but is not wanted in the output.
type Suppressed struct{}

func (Revision) isClassified()   {}
func (Literal) isClassified()    {}
func (Suppressed) isClassified() {}

func isOption(arg string) bool {
	return strings.HasPrefix(arg, "-")
}

// classifyFlag classifies an option-shaped argument rev-parse has no
// meaning for.
func (p *ArgParser) classifyFlag(arg string) Classified {
	if p.mode.RevArgs && IsRevisionFlag(arg) {
		return Literal{Text: arg, Kind: RevisionFlag}
	}

	return Literal{Text: arg, Kind: Flag}
}

// classify classifies a non-option argument. The results are returned in
// the order they must be shown: a pending default may be flushed ahead of
// the argument itself.
func (p *ArgParser) classify(arg string) []Classified {
	if results, ok := p.splitRange(arg); ok {
		return results
	}

	if h, ok := p.resolve(arg); ok {
		return p.revisions(Revision{Hash: h, Name: arg, Polarity: Normal})
	}

	if strings.HasPrefix(arg, "^") {
		name := arg[1:]
		if h, ok := p.resolve(name); ok {
			return p.revisions(Revision{Hash: h, Name: name, Polarity: Reversed})
		}
	}

	return append(p.flushDefault(), Literal{Text: arg, Kind: NonRevision})
}

// revisions claims the place of the pending default for the given
// revisions, unless revisions are not wanted at all.
func (p *ArgParser) revisions(revs ...Revision) []Classified {
	if p.mode.NoRevs {
		return []Classified{Suppressed{}}
	}

	p.mode.ClearDefault()

	results := make([]Classified, len(revs))
	for i, r := range revs {
		results[i] = r
	}

	return results
}

// flushDefault returns the pending default, as a revision if it resolves
// and as a literal otherwise.
func (p *ArgParser) flushDefault() []Classified {
	name, ok := p.mode.takeDefault()
	if !ok {
		return nil
	}

	if h, ok := p.resolve(name); ok {
		return []Classified{Revision{Hash: h, Name: name, Polarity: Normal}}
	}

	return []Classified{Literal{Text: name, Kind: NonRevision}}
}

// resolve asks the source for the object named by name. Any failure means
// the name is not a revision.
func (p *ArgParser) resolve(name string) (plumbing.Hash, bool) {
	h, err := p.src.ResolveRevision(plumbing.Revision(name))
	if err == nil {
		return h, true
	}

	if err != plumbing.ErrReferenceNotFound {
		p.log.Warn("cannot resolve revision", zap.String("name", name), zap.Error(err))
	}

	return plumbing.ZeroHash, false
}
