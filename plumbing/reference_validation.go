package plumbing

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrRefLeadingDot                = errors.New("ref name cannot begin with a dot")
	ErrRefTrailingLock              = errors.New("ref name cannot end with .lock")
	ErrRefAtLeastOneForwardSlash    = errors.New("ref name must have at least one forward slash")
	ErrRefDoubleDots                = errors.New("ref name cannot include two consecutive dots")
	ErrRefExcludedCharacters        = errors.New("ref name cannot include many special characters")
	ErrRefLeadingForwardSlash       = errors.New("ref name cannot start with a forward slash")
	ErrRefTrailingForwardSlash      = errors.New("ref name cannot end with a forward slash")
	ErrRefConsecutiveForwardSlashes = errors.New("ref name cannot have consecutive forward slashes")
	ErrRefTrailingDot               = errors.New("ref name cannot end with a dot")
	ErrRefAtOpenBrace               = errors.New("ref name cannot include at-open-brace")
	ErrRefSingleAt                  = errors.New("ref name cannot be the single character @")
)

var (
	PatternLeadingDot                = regexp.MustCompile(`(^|/)\.`)
	PatternTrailingLock              = regexp.MustCompile(`\.lock(/|$)`)
	PatternDoubleDots                = regexp.MustCompile(`\.\.`)
	PatternExcludedCharacters        = regexp.MustCompile(`[\000-\037\177 ~^:?*[\\]+`)
	PatternLeadingForwardSlash       = regexp.MustCompile(`^/`)
	PatternTrailingForwardSlash      = regexp.MustCompile(`/$`)
	PatternConsecutiveForwardSlashes = regexp.MustCompile(`//+`)
	PatternTrailingDot               = regexp.MustCompile(`\.$`)
	PatternAtOpenBrace               = regexp.MustCompile(`@{`)
)

// CheckRefOptions tunes the rules applied by RefNameChecker.
type CheckRefOptions struct {
	// They must contain at least one /
	//  If the --allow-onelevel option is used, this rule is waived.
	AllowOneLevel bool
}

// https://git-scm.com/docs/git-check-ref-format
// git-check-ref-format
type RefNameChecker struct {
	Name            ReferenceName
	CheckRefOptions CheckRefOptions
}

// NewRefNameChecker returns a checker for the given name.
func NewRefNameChecker(name ReferenceName, opts CheckRefOptions) *RefNameChecker {
	return &RefNameChecker{
		Name:            name,
		CheckRefOptions: opts,
	}
}

type patternRule struct {
	re  *regexp.Regexp
	err error
}

var patternRules = []patternRule{
	{PatternLeadingDot, ErrRefLeadingDot},
	{PatternTrailingLock, ErrRefTrailingLock},
	{PatternDoubleDots, ErrRefDoubleDots},
	{PatternExcludedCharacters, ErrRefExcludedCharacters},
	{PatternLeadingForwardSlash, ErrRefLeadingForwardSlash},
	{PatternTrailingForwardSlash, ErrRefTrailingForwardSlash},
	{PatternConsecutiveForwardSlashes, ErrRefConsecutiveForwardSlashes},
	{PatternTrailingDot, ErrRefTrailingDot},
	{PatternAtOpenBrace, ErrRefAtOpenBrace},
}

// CheckRefName returns the first rule the name breaks, nil if it is a
// well-formed reference name.
func (v *RefNameChecker) CheckRefName() error {
	name := v.Name.String()
	if name == "" {
		return ErrInvalidReferenceName
	}

	if name == "@" {
		return ErrRefSingleAt
	}

	if !v.CheckRefOptions.AllowOneLevel && !strings.Contains(name, "/") {
		return ErrRefAtLeastOneForwardSlash
	}

	for _, rule := range patternRules {
		if rule.re.MatchString(name) {
			return rule.err
		}
	}

	return nil
}

// Validate checks the name the way the resolver needs it: one level names
// such as HEAD or master are allowed, since they are expanded afterwards.
func (r ReferenceName) Validate() error {
	return NewRefNameChecker(r, CheckRefOptions{AllowOneLevel: true}).CheckRefName()
}
