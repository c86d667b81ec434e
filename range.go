package revparse

import (
	"strings"

	"gopkg.in/src-d/go-revparse.v1/plumbing"
)

const rangeDelimiter = ".."

// splitRange handles "A..B" arguments, an empty B meaning HEAD. When both
// ends resolve it returns B and then ^A; otherwise ok is false and the
// argument must be classified as a whole.
func (p *ArgParser) splitRange(arg string) (results []Classified, ok bool) {
	i := strings.Index(arg, rangeDelimiter)
	if i < 0 {
		return nil, false
	}

	left, right := arg[:i], arg[i+len(rangeDelimiter):]
	from, ok := p.resolve(left)
	if !ok {
		return nil, false
	}

	if right == "" {
		right = plumbing.HEAD.String()
	}

	to, ok := p.resolve(right)
	if !ok {
		return nil, false
	}

	return p.revisions(
		Revision{Hash: to, Name: right, Polarity: Normal},
		Revision{Hash: from, Name: left, Polarity: Reversed},
	), true
}
