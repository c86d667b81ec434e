package revparse

import (
	"bytes"
	"errors"
	"strings"

	"github.com/google/go-cmp/cmp"
	. "gopkg.in/check.v1"

	"gopkg.in/src-d/go-revparse.v1/plumbing"
	"gopkg.in/src-d/go-revparse.v1/plumbing/storer"
)

type RevParseSuite struct {
	BaseSuite
}

var _ = Suite(&RevParseSuite{})

func assertLines(c *C, obtained string, expected ...string) {
	var lines []string
	if obtained != "" {
		lines = strings.Split(strings.TrimSuffix(obtained, "\n"), "\n")
	}

	if diff := cmp.Diff(expected, lines); diff != "" {
		c.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func (s *RevParseSuite) TestRevision(c *C) {
	out, err := s.revParse(c, "master")
	c.Assert(err, IsNil)
	assertLines(c, out, masterHash)
}

func (s *RevParseSuite) TestRevisionDWIM(c *C) {
	out, err := s.revParse(c, "HEAD", "@", "v1.0.0", "origin", "origin/master", "refs/heads/branch")
	c.Assert(err, IsNil)
	assertLines(c, out, masterHash, masterHash, tagHash, masterHash, masterHash, branchHash)
}

func (s *RevParseSuite) TestFullHashResolvesToItself(c *C) {
	out, err := s.revParse(c, "0123456789abcdef0123456789abcdef01234567")
	c.Assert(err, IsNil)
	assertLines(c, out, "0123456789abcdef0123456789abcdef01234567")
}

func (s *RevParseSuite) TestLiteral(c *C) {
	out, err := s.revParse(c, "file.txt", "master", "dir/other file")
	c.Assert(err, IsNil)
	assertLines(c, out, "file.txt", masterHash, "dir/other file")
}

func (s *RevParseSuite) TestNegation(c *C) {
	out, err := s.revParse(c, "^master", "^nope")
	c.Assert(err, IsNil)
	assertLines(c, out, "^"+masterHash, "^nope")
}

func (s *RevParseSuite) TestNot(c *C) {
	out, err := s.revParse(c, "--not", "master", "^branch")
	c.Assert(err, IsNil)
	assertLines(c, out, "^"+masterHash, branchHash)
}

func (s *RevParseSuite) TestNotTwiceIsIdentity(c *C) {
	plain, err := s.revParse(c, "master", "^branch", "branch..master")
	c.Assert(err, IsNil)

	twice, err := s.revParse(c, "--not", "--not", "master", "^branch", "branch..master")
	c.Assert(err, IsNil)
	c.Assert(twice, Equals, plain)
}

func (s *RevParseSuite) TestRange(c *C) {
	out, err := s.revParse(c, "branch..master")
	c.Assert(err, IsNil)
	assertLines(c, out, masterHash, "^"+branchHash)
}

func (s *RevParseSuite) TestRangeEmptyRightIsHEAD(c *C) {
	implicit, err := s.revParse(c, "branch..")
	c.Assert(err, IsNil)

	explicit, err := s.revParse(c, "branch..HEAD")
	c.Assert(err, IsNil)
	c.Assert(implicit, Equals, explicit)

	out, err := s.revParse(c, "--symbolic", "branch..")
	c.Assert(err, IsNil)
	assertLines(c, out, "HEAD", "^branch")
}

func (s *RevParseSuite) TestRangeUnresolved(c *C) {
	out, err := s.revParse(c, "branch..nope", "nope..master", "..", "a...b")
	c.Assert(err, IsNil)
	assertLines(c, out, "branch..nope", "nope..master", "..", "a...b")
}

func (s *RevParseSuite) TestRangeSplitsAtFirstDelimiter(c *C) {
	out, err := s.revParse(c, "branch..master..main")
	c.Assert(err, IsNil)
	assertLines(c, out, "branch..master..main")
}

func (s *RevParseSuite) TestRangeClearsDefault(c *C) {
	out, err := s.revParse(c, "--default", "main", "branch..master")
	c.Assert(err, IsNil)
	assertLines(c, out, masterHash, "^"+branchHash)
}

func (s *RevParseSuite) TestSq(c *C) {
	out, err := s.revParse(c, "--sq", "abc", "O'Brien")
	c.Assert(err, IsNil)
	c.Assert(out, Equals, `'abc' 'O'\''Brien' `)
}

func (s *RevParseSuite) TestSqRevisions(c *C) {
	out, err := s.revParse(c, "--sq", "master", "^branch")
	c.Assert(err, IsNil)
	c.Assert(out, Equals, "'"+masterHash+"' ^'"+branchHash+"' ")
}

func (s *RevParseSuite) TestSqRoundTrip(c *C) {
	args := []string{"it's", "''", "a b", `back\slash`, "'", "plain", "x'y'z"}
	out, err := s.revParse(c, append([]string{"--sq"}, args...)...)
	c.Assert(err, IsNil)
	c.Assert(strings.Contains(out, "\n"), Equals, false)
	c.Assert(shellSplit(c, out), DeepEquals, args)
}

func (s *RevParseSuite) TestQuote(c *C) {
	c.Assert(Quote(""), Equals, "''")
	c.Assert(Quote("abc"), Equals, "'abc'")
	c.Assert(Quote("O'Brien"), Equals, `'O'\''Brien'`)
}

func (s *RevParseSuite) TestDefaultFlushedBySeparator(c *C) {
	out, err := s.revParse(c, "--default=main", "--", "file.txt", "master", "--foo")
	c.Assert(err, IsNil)
	assertLines(c, out, mainHash, "--", "file.txt", "master", "--foo")
}

func (s *RevParseSuite) TestDefaultAtEnd(c *C) {
	out, err := s.revParse(c, "--default", "main")
	c.Assert(err, IsNil)
	assertLines(c, out, mainHash)

	out, err = s.revParse(c, "--default=nope")
	c.Assert(err, IsNil)
	assertLines(c, out, "nope")
}

func (s *RevParseSuite) TestDefaultSupersededByRevision(c *C) {
	out, err := s.revParse(c, "--default", "main", "branch", "file")
	c.Assert(err, IsNil)
	assertLines(c, out, branchHash, "file")
}

func (s *RevParseSuite) TestDefaultFlushedBeforeLiteral(c *C) {
	out, err := s.revParse(c, "--default", "main", "file", "other")
	c.Assert(err, IsNil)
	assertLines(c, out, mainHash, "file", "other")
}

func (s *RevParseSuite) TestDefaultRedefined(c *C) {
	out, err := s.revParse(c, "--default", "main", "file", "--default=branch", "other")
	c.Assert(err, IsNil)
	assertLines(c, out, mainHash, "file", branchHash, "other")
}

func (s *RevParseSuite) TestDefaultMissingValue(c *C) {
	out, err := s.revParse(c, "--default=main", "--default")
	c.Assert(err, IsNil)
	assertLines(c, out)
}

func (s *RevParseSuite) TestRevsOnlyWithFlags(c *C) {
	out, err := s.revParse(c, "--revs-only", "--flags", "master", "file", "--foo", "^branch")
	c.Assert(err, IsNil)
	assertLines(c, out, masterHash, "--foo", "^"+branchHash)
}

func (s *RevParseSuite) TestRevsOnly(c *C) {
	out, err := s.revParse(c, "--revs-only", "--max-count=5", "--foo", "master", "file")
	c.Assert(err, IsNil)
	assertLines(c, out, "--max-count=5", "--foo", masterHash)
}

func (s *RevParseSuite) TestRevsOnlySeparatorStops(c *C) {
	out, err := s.revParse(c, "--revs-only", "--default", "main", "--", "branch", "file")
	c.Assert(err, IsNil)
	assertLines(c, out, mainHash)
}

func (s *RevParseSuite) TestNoRevs(c *C) {
	out, err := s.revParse(c, "--no-revs", "master", "--max-count=5", "file", "--foo", "branch..master")
	c.Assert(err, IsNil)
	assertLines(c, out, "file", "--foo")
}

func (s *RevParseSuite) TestNoRevsKeepsDefault(c *C) {
	out, err := s.revParse(c, "--no-revs", "--default", "nope", "master")
	c.Assert(err, IsNil)
	assertLines(c, out, "nope")
}

func (s *RevParseSuite) TestFlags(c *C) {
	out, err := s.revParse(c, "--flags", "master", "file", "--foo", "-n", "--bisect")
	c.Assert(err, IsNil)
	assertLines(c, out, masterHash, "--foo", "-n", "--bisect")
}

func (s *RevParseSuite) TestFlagsSeparatorStops(c *C) {
	out, err := s.revParse(c, "--flags", "--", "--foo")
	c.Assert(err, IsNil)
	assertLines(c, out)
}

func (s *RevParseSuite) TestNoFlags(c *C) {
	out, err := s.revParse(c, "--no-flags", "--foo", "--max-count=1", "master", "file", "--")
	c.Assert(err, IsNil)
	assertLines(c, out, masterHash, "file")
}

func (s *RevParseSuite) TestOptionShaped(c *C) {
	out, err := s.revParse(c, "-", "-n", "--unknown=value", "--topo-order")
	c.Assert(err, IsNil)
	assertLines(c, out, "-", "-n", "--unknown=value", "--topo-order")
}

func (s *RevParseSuite) TestVerify(c *C) {
	out, err := s.revParse(c, "--verify", "master")
	c.Assert(err, IsNil)
	assertLines(c, out, masterHash)
}

func (s *RevParseSuite) TestVerifyShowsFlags(c *C) {
	out, err := s.revParse(c, "--verify", "--max-count=1", "--foo", "master")
	c.Assert(err, IsNil)
	assertLines(c, out, "--max-count=1", "--foo", masterHash)

	out, err = s.revParse(c, "--verify", "--no-flags", "--foo", "master")
	c.Assert(err, IsNil)
	assertLines(c, out, masterHash)
}

func (s *RevParseSuite) TestVerifyNone(c *C) {
	out, err := s.revParse(c, "--verify", "nope")
	c.Assert(err, Equals, ErrNeedSingleRevision)
	assertLines(c, out)
}

func (s *RevParseSuite) TestVerifyMany(c *C) {
	out, err := s.revParse(c, "--verify", "master", "branch")
	c.Assert(err, Equals, ErrNeedSingleRevision)
	assertLines(c, out, masterHash, branchHash)

	_, err = s.revParse(c, "--verify", "branch..master")
	c.Assert(err, Equals, ErrNeedSingleRevision)
}

func (s *RevParseSuite) TestVerifyDefault(c *C) {
	out, err := s.revParse(c, "--verify", "--default", "main")
	c.Assert(err, IsNil)
	assertLines(c, out, mainHash)
}

func (s *RevParseSuite) TestVerifyNoRevs(c *C) {
	_, err := s.revParse(c, "--verify", "--no-revs", "master")
	c.Assert(err, Equals, ErrNeedSingleRevision)
}

func (s *RevParseSuite) TestSymbolic(c *C) {
	out, err := s.revParse(c, "--symbolic", "master", "^branch", "0123456789abcdef0123456789abcdef01234567")
	c.Assert(err, IsNil)
	assertLines(c, out, "master", "^branch", "0123456789abcdef0123456789abcdef01234567")
}

func (s *RevParseSuite) TestAll(c *C) {
	out, err := s.revParse(c, "--all")
	c.Assert(err, IsNil)
	assertLines(c, out,
		branchHash,
		mainHash,
		masterHash,
		masterHash,
		masterHash,
		tagHash,
	)
}

func (s *RevParseSuite) TestAllSymbolic(c *C) {
	out, err := s.revParse(c, "--symbolic", "--not", "--all")
	c.Assert(err, IsNil)
	assertLines(c, out,
		"^refs/heads/branch",
		"^refs/heads/main",
		"^refs/heads/master",
		"^refs/remotes/origin/HEAD",
		"^refs/remotes/origin/master",
		"^refs/tags/v1.0.0",
	)
}

func (s *RevParseSuite) TestRefKinds(c *C) {
	out, err := s.revParse(c, "--branches", "--tags")
	c.Assert(err, IsNil)
	assertLines(c, out, branchHash, mainHash, masterHash, tagHash)

	out, err = s.revParse(c, "--remotes")
	c.Assert(err, IsNil)
	assertLines(c, out, masterHash, masterHash)
}

func (s *RevParseSuite) TestRefKindsSymbolic(c *C) {
	out, err := s.revParse(c, "--symbolic", "--branches", "--not", "--remotes", "--tags")
	c.Assert(err, IsNil)
	assertLines(c, out,
		"branch",
		"main",
		"master",
		"^origin/HEAD",
		"^origin/master",
		"^v1.0.0",
	)
}

func (s *RevParseSuite) TestAllCountsForVerify(c *C) {
	_, err := s.revParse(c, "--verify", "--all")
	c.Assert(err, Equals, ErrNeedSingleRevision)
}

func (s *RevParseSuite) TestShowPrefix(c *C) {
	out, err := s.revParse(c, "--sq", "--show-prefix", "file")
	c.Assert(err, IsNil)
	c.Assert(out, Equals, "sub/dir/\n'file' ")
}

func (s *RevParseSuite) TestShowPrefixTopLevel(c *C) {
	r, err := Open(s.Repository.Storer, "/tmp/worktree", "")
	c.Assert(err, IsNil)

	buf := bytes.NewBuffer(nil)
	c.Assert(r.RevParse(buf, "--show-prefix"), IsNil)
	c.Assert(buf.String(), Equals, "\n")
}

func (s *RevParseSuite) TestShowToplevel(c *C) {
	out, err := s.revParse(c, "--show-toplevel", "--is-bare-repository")
	c.Assert(err, IsNil)
	assertLines(c, out, "/tmp/worktree", "false")
}

func (s *RevParseSuite) TestShowToplevelBare(c *C) {
	r, err := Open(s.Repository.Storer, "", "")
	c.Assert(err, IsNil)

	buf := bytes.NewBuffer(nil)
	c.Assert(r.RevParse(buf, "--is-bare-repository", "master", "--show-toplevel", "branch"),
		Equals, ErrIsBareRepository)
	assertLines(c, buf.String(), "true", masterHash)
}

func (s *RevParseSuite) TestArgParserState(c *C) {
	p, err := NewArgParser(s.Repository, &ParseOptions{Output: bytes.NewBuffer(nil)})
	c.Assert(err, IsNil)
	c.Assert(p.State(), Equals, Interpreting)
	c.Assert(p.Mode().RevArgs, Equals, true)

	c.Assert(p.Parse([]string{"--default", "main", "master", "--not", "--", "branch"}), IsNil)
	c.Assert(p.State(), Equals, RawPassthrough)
	c.Assert(p.Mode().DefaultState(), Equals, DefaultFlushed)
	c.Assert(p.Mode().Polarity, Equals, Reversed)
	c.Assert(p.Revisions(), Equals, 1)
}

func (s *RevParseSuite) TestArgParserDone(c *C) {
	p, err := NewArgParser(s.Repository, &ParseOptions{Output: bytes.NewBuffer(nil)})
	c.Assert(err, IsNil)

	c.Assert(p.Parse([]string{"--revs-only", "--", "master"}), IsNil)
	c.Assert(p.State(), Equals, Done)
	c.Assert(p.Revisions(), Equals, 0)
}

func (s *RevParseSuite) TestRevisionCounter(c *C) {
	p, err := NewArgParser(s.Repository, &ParseOptions{Output: bytes.NewBuffer(nil)})
	c.Assert(err, IsNil)

	c.Assert(p.Parse([]string{"master", "file", "^branch", "branch..master", "--foo"}), IsNil)
	c.Assert(p.Revisions(), Equals, 4)
}

func (s *RevParseSuite) TestResolutionErrorIsLiteral(c *C) {
	buf := bytes.NewBuffer(nil)
	p, err := NewArgParser(&brokenSource{s.Repository}, &ParseOptions{Output: buf})
	c.Assert(err, IsNil)

	c.Assert(p.Parse([]string{"master", "branch"}), IsNil)
	assertLines(c, buf.String(), "master", branchHash)
}

func (s *RevParseSuite) TestReferencesError(c *C) {
	p, err := NewArgParser(&brokenSource{s.Repository}, &ParseOptions{Output: bytes.NewBuffer(nil)})
	c.Assert(err, IsNil)
	c.Assert(p.Parse([]string{"--all"}), Equals, errBroken)
}

var errBroken = errors.New("broken")

// brokenSource fails every lookup of master and every enumeration.
type brokenSource struct {
	*Repository
}

func (s *brokenSource) ResolveRevision(rev plumbing.Revision) (plumbing.Hash, error) {
	if rev == "master" {
		return plumbing.ZeroHash, errBroken
	}

	return s.Repository.ResolveRevision(rev)
}

func (s *brokenSource) References() (storer.ReferenceIter, error) {
	return nil, errBroken
}

// shellSplit splits a line the way a POSIX shell does for words made of
// single quoted strings and backslash escapes.
func shellSplit(c *C, line string) []string {
	var words []string
	var word []rune
	var inWord, quoted, escaped bool

	for _, r := range line {
		switch {
		case escaped:
			word = append(word, r)
			escaped = false
		case quoted:
			if r == '\'' {
				quoted = false
				continue
			}

			word = append(word, r)
		case r == '\'':
			quoted, inWord = true, true
		case r == '\\':
			escaped, inWord = true, true
		case r == ' ':
			if inWord {
				words = append(words, string(word))
			}

			word, inWord = nil, false
		default:
			word = append(word, r)
			inWord = true
		}
	}

	c.Assert(quoted, Equals, false)
	c.Assert(escaped, Equals, false)
	if inWord {
		words = append(words, string(word))
	}

	return words
}
