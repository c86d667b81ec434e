package revparse

import (
	"errors"
	"strings"
)

// ErrUnknownOption is returned by Mode.Set for tokens that are not mode
// switches. It is not a failure: such tokens are shown as flags.
var ErrUnknownOption = errors.New("unknown option")

// Polarity marks an emitted revision as included (Normal) or excluded
// (Reversed).
type Polarity int8

const (
	Normal Polarity = iota
	Reversed
)

// Toggle returns the opposite polarity.
func (p Polarity) Toggle() Polarity {
	return p ^ Reversed
}

func (p Polarity) String() string {
	switch p {
	case Normal:
		return "normal"
	case Reversed:
		return "reversed"
	}

	return "unknown"
}

// DefaultState tracks the revision given with --default.
type DefaultState int8

const (
	// DefaultFlushed means no default is pending, either because none was
	// given or because it was already emitted or superseded.
	DefaultFlushed DefaultState = iota
	// AwaitingDefault means a default was given and nothing has claimed its
	// place yet.
	AwaitingDefault
)

// ArgState is the state of the argument loop.
type ArgState int8

const (
	// Interpreting classifies every argument.
	Interpreting ArgState = iota
	// RawPassthrough shows every argument as is, it is entered after "--".
	RawPassthrough
	// Done ignores every remaining argument, it is entered after "--" when
	// only revisions or only flags are wanted.
	Done
)

// Mode holds the switches that change how arguments are classified and
// shown. It is built by NewMode and updated in place by the options found
// in the argument list.
type Mode struct {
	// NoRevs suppresses revisions and revision flags (--no-revs).
	NoRevs bool
	// RevsOnly suppresses everything that is not a revision (--revs-only).
	RevsOnly bool
	// FlagsOnly suppresses non-flag arguments (--flags).
	FlagsOnly bool
	// NoFlags suppresses flags (--no-flags).
	NoFlags bool
	// RevArgs keeps revision flags such as --max-count= apart from the other
	// flags. It is on by default and cleared by --verify.
	RevArgs bool
	// Quote renders every token shell quoted on a single line (--sq).
	Quote bool
	// Symbolic shows revisions by the name they were given (--symbolic).
	Symbolic bool
	// Verify requires exactly one revision to be emitted (--verify).
	Verify bool
	// Polarity is the baseline revisions are shown against, flipped by
	// --not. Revisions not matching it are prefixed with '^'.
	Polarity Polarity

	defaultState DefaultState
	defaultName  string
}

// NewMode returns the mode in effect before any option is seen.
func NewMode() *Mode {
	return &Mode{RevArgs: true}
}

const defaultOption = "--default"

// Set applies a mode switch. ErrUnknownOption is returned if option is not
// one of them, leaving the mode untouched.
func (m *Mode) Set(option string) error {
	switch option {
	case "--revs-only":
		m.RevsOnly = true
	case "--no-revs":
		m.NoRevs = true
	case "--flags":
		m.FlagsOnly = true
	case "--no-flags":
		m.NoFlags = true
	case "--verify":
		m.RevsOnly = true
		m.RevArgs = false
		m.Verify = true
	case "--sq":
		m.Quote = true
	case "--not":
		m.Polarity = m.Polarity.Toggle()
	case "--symbolic":
		m.Symbolic = true
	default:
		if !strings.HasPrefix(option, defaultOption+"=") {
			return ErrUnknownOption
		}

		m.SetDefault(option[len(defaultOption)+1:])
	}

	return nil
}

// SetDefault sets the revision to emit when no revision claims its place.
// An empty name clears any pending default.
func (m *Mode) SetDefault(name string) {
	if name == "" {
		m.ClearDefault()
		return
	}

	m.defaultName = name
	m.defaultState = AwaitingDefault
}

// ClearDefault drops the pending default without emitting it.
func (m *Mode) ClearDefault() {
	m.defaultName = ""
	m.defaultState = DefaultFlushed
}

// DefaultState returns whether a default is pending.
func (m *Mode) DefaultState() DefaultState {
	return m.defaultState
}

// takeDefault returns the pending default, if any, and clears it.
func (m *Mode) takeDefault() (string, bool) {
	if m.defaultState != AwaitingDefault {
		return "", false
	}

	name := m.defaultName
	m.ClearDefault()
	return name, true
}

// revisionFlags are the flags meaningful to revision walkers, matched by
// prefix.
var revisionFlags = []string{
	"--max-count=",
	"--max-age=",
	"--min-age=",
	"--merge-order",
	"--topo-order",
	"--bisect",
	"--no-merges",
}

// IsRevisionFlag reports whether arg is a flag meant for revision walkers.
func IsRevisionFlag(arg string) bool {
	for _, f := range revisionFlags {
		if strings.HasPrefix(arg, f) {
			return true
		}
	}

	return false
}
