// Package revparse interprets the arguments of git rev-parse: it tells
// revisions, ranges, negated revisions, flags and plain arguments apart and
// prints them in a form scripts can consume.
package revparse

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"gopkg.in/src-d/go-revparse.v1/plumbing"
	"gopkg.in/src-d/go-revparse.v1/plumbing/storer"
)

// ErrNeedSingleRevision is returned under --verify when the arguments did
// not produce exactly one revision.
var ErrNeedSingleRevision = errors.New("needed a single revision")

// Source is what the argument parser needs from a repository. Repository
// implements it.
type Source interface {
	// ResolveRevision returns plumbing.ErrReferenceNotFound for names that
	// are not revisions.
	ResolveRevision(plumbing.Revision) (plumbing.Hash, error)
	// References returns every reference --all shows, already resolved.
	References() (storer.ReferenceIter, error)
	Prefix() string
	Toplevel() (string, error)
	IsBare() bool
}

// ParseOptions describes how the arguments are parsed.
type ParseOptions struct {
	// Output is where the results are written, os.Stdout by default.
	Output io.Writer
	// Logger receives a debug entry per argument, nothing is logged by
	// default.
	Logger *zap.Logger
}

// Validate validates the fields and sets the default values.
func (o *ParseOptions) Validate() error {
	if o.Output == nil {
		o.Output = os.Stdout
	}

	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	return nil
}

// ArgParser walks a rev-parse argument list left to right, classifying and
// printing each argument as it goes. An ArgParser is meant for a single
// argument list.
type ArgParser struct {
	src   Source
	mode  *Mode
	state ArgState
	out   *printer
	log   *zap.Logger
}

// NewArgParser returns an ArgParser reading from src. A nil o uses the
// default options.
func NewArgParser(src Source, o *ParseOptions) (*ArgParser, error) {
	if o == nil {
		o = &ParseOptions{}
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}

	m := NewMode()
	return &ArgParser{
		src:  src,
		mode: m,
		out:  newPrinter(o.Output, m),
		log:  o.Logger,
	}, nil
}

// Mode returns the mode in effect, it changes while arguments are parsed.
func (p *ArgParser) Mode() *Mode {
	return p.mode
}

// State returns the state of the argument loop.
func (p *ArgParser) State() ArgState {
	return p.state
}

// Revisions returns how many revisions have been shown so far.
func (p *ArgParser) Revisions() int {
	return p.out.revs
}

// Parse classifies and prints args. Once every argument is consumed any
// pending default is flushed, and under --verify ErrNeedSingleRevision is
// returned unless exactly one revision was shown.
func (p *ArgParser) Parse(args []string) error {
	for i := 0; i < len(args) && p.state != Done; i++ {
		arg := args[i]

		if p.state == RawPassthrough {
			p.show(arg, Literal{Text: arg, Kind: NonRevision})
			continue
		}

		if !isOption(arg) {
			p.show(arg, p.classify(arg)...)
			continue
		}

		if arg == defaultOption {
			var name string
			if i+1 < len(args) {
				i++
				name = args[i]
			}

			p.mode.SetDefault(name)
			continue
		}

		if err := p.parseOption(arg); err != nil {
			p.out.Flush()
			return err
		}
	}

	p.show("", p.flushDefault()...)
	if err := p.out.Flush(); err != nil {
		return err
	}

	if p.mode.Verify && p.out.revs != 1 {
		return ErrNeedSingleRevision
	}

	return nil
}

func (p *ArgParser) parseOption(arg string) error {
	switch arg {
	case "--":
		results := p.flushDefault()
		if p.mode.RevsOnly || p.mode.FlagsOnly {
			p.state = Done
		} else {
			p.state = RawPassthrough
			results = append(results, p.classifyFlag(arg))
		}

		p.show(arg, results...)
	case "--show-prefix":
		p.out.raw(p.src.Prefix())
	case "--show-toplevel":
		wt, err := p.src.Toplevel()
		if err != nil {
			return err
		}

		p.out.raw(wt)
	case "--is-bare-repository":
		p.out.raw(strconv.FormatBool(p.src.IsBare()))
	default:
		if l, ok := refLists[arg]; ok {
			return p.showReferences(arg, l)
		}

		if err := p.mode.Set(arg); err == ErrUnknownOption {
			p.show(arg, p.classifyFlag(arg))
		} else {
			p.log.Debug("option", zap.String("arg", arg))
		}
	}

	return nil
}

// refList is an option listing references.
type refList struct {
	keep func(plumbing.ReferenceName) bool
	// trim is removed from the names shown with --symbolic.
	trim string
}

var refLists = map[string]refList{
	"--all":      {keep: plumbing.ReferenceName.IsRef},
	"--branches": {keep: plumbing.ReferenceName.IsBranch, trim: "refs/heads/"},
	"--tags":     {keep: plumbing.ReferenceName.IsTag, trim: "refs/tags/"},
	"--remotes":  {keep: plumbing.ReferenceName.IsRemote, trim: "refs/remotes/"},
}

func (p *ArgParser) showReferences(arg string, l refList) error {
	iter, err := p.src.References()
	if err != nil {
		return err
	}

	iter = storer.NewReferenceFilteredIter(func(r *plumbing.Reference) bool {
		return l.keep(r.Name())
	}, iter)

	return iter.ForEach(func(r *plumbing.Reference) error {
		p.show(arg, Revision{
			Hash:     r.Hash(),
			Name:     strings.TrimPrefix(r.Name().String(), l.trim),
			Polarity: Normal,
		})
		return nil
	})
}

func (p *ArgParser) show(arg string, results ...Classified) {
	if ce := p.log.Check(zap.DebugLevel, "classified"); ce != nil {
		kinds := make([]string, len(results))
		for i, r := range results {
			kinds[i] = describe(r)
		}

		ce.Write(zap.String("arg", arg), zap.Strings("results", kinds))
	}

	p.out.show(results...)
}

func describe(r Classified) string {
	switch r := r.(type) {
	case Revision:
		return fmt.Sprintf("revision(%s %s %s)", r.Polarity, r.Name, r.Hash)
	case Literal:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Text)
	default:
		return "suppressed"
	}
}

// RevParse parses args against the repository, writing the results to w.
func (r *Repository) RevParse(w io.Writer, args ...string) error {
	p, err := NewArgParser(r, &ParseOptions{Output: w})
	if err != nil {
		return err
	}

	return p.Parse(args)
}
