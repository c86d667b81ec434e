package revparse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/osfs"

	"gopkg.in/src-d/go-revparse.v1/plumbing"
	"gopkg.in/src-d/go-revparse.v1/plumbing/storer"
	"gopkg.in/src-d/go-revparse.v1/storage/filesystem"
)

// GitDirName this is a special folder where all the git stuff is.
const GitDirName = ".git"

var (
	// ErrRepositoryNotExists is returned when no git directory is found at
	// or above the given path.
	ErrRepositoryNotExists = errors.New("repository does not exist")
	// ErrIsBareRepository is returned by operations that need a worktree.
	ErrIsBareRepository = errors.New("this operation must be run in a work tree")
	// ErrInvalidGitDirFile is returned when a .git file cannot be parsed.
	ErrInvalidGitDirFile = errors.New(".git file has no gitdir prefix")
)

// Repository represents a git repository as seen by rev-parse: the reference
// storage plus the location of the worktree relative to the caller.
type Repository struct {
	Storer storer.Storer

	worktree string
	prefix   string
}

// Open opens a git repository using the given Storer. worktree is the
// absolute path of the working tree root, empty for bare repositories, and
// prefix the caller's position inside it, as a slash separated path ending
// in a slash ("" at the top level).
func Open(s storer.Storer, worktree, prefix string) (*Repository, error) {
	if s == nil {
		return nil, ErrRepositoryNotExists
	}

	return &Repository{
		Storer:   s,
		worktree: worktree,
		prefix:   prefix,
	}, nil
}

// PlainOpenOptions describes how opening a plain repository should be
// performed.
type PlainOpenOptions struct {
	// DetectDotGit defines whether parent directories should be
	// walked until a .git directory or file is found.
	DetectDotGit bool
}

// Validate validates the fields and sets the default values.
func (o *PlainOpenOptions) Validate() error { return nil }

// PlainOpen opens a git repository from the given path. It detects if the
// repository is bare or a normal one. If the path doesn't contain a valid
// repository ErrRepositoryNotExists is returned
func PlainOpen(path string) (*Repository, error) {
	return PlainOpenWithOptions(path, &PlainOpenOptions{})
}

// PlainOpenWithOptions opens a git repository from the given path with
// specific options. See PlainOpen for more info.
func PlainOpenWithOptions(path string, o *PlainOpenOptions) (*Repository, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	dot, wt, err := dotGitToOSFilesystems(path, o.DetectDotGit)
	if err != nil {
		return nil, err
	}

	if _, err := dot.Stat(plumbing.HEAD.String()); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrRepositoryNotExists
		}

		return nil, err
	}

	s := filesystem.NewStorage(dot)
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}

	switch {
	case cfg.GetBool("core", "", "bare", false):
		wt = ""
	case cfg.Get("core", "", "worktree") != "":
		wt = cfg.Get("core", "", "worktree")
		if !filepath.IsAbs(wt) {
			wt = filepath.Join(dot.Root(), wt)
		}
	}

	return Open(s, wt, workingPrefix(wt, path))
}

func dotGitToOSFilesystems(path string, detect bool) (dot billy.Filesystem, worktree string, err error) {
	fs := osfs.New(path)
	fi, err := fs.Stat(GitDirName)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, "", err
		}

		if isGitDir(fs) {
			return fs, "", nil
		}

		if detect {
			parent := filepath.Dir(path)
			if parent != path {
				return dotGitToOSFilesystems(parent, detect)
			}
		}

		return nil, "", ErrRepositoryNotExists
	}

	if fi.IsDir() {
		dot, err = fs.Chroot(GitDirName)
		return dot, path, err
	}

	dot, err = dotGitFileToOSFilesystem(path, fs)
	if err != nil {
		return nil, "", err
	}

	return dot, path, nil
}

func dotGitFileToOSFilesystem(path string, fs billy.Filesystem) (bfs billy.Filesystem, err error) {
	f, err := fs.Open(GitDirName)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}

	line = strings.TrimSpace(line)
	const prefix = "gitdir: "
	if !strings.HasPrefix(line, prefix) {
		return nil, ErrInvalidGitDirFile
	}

	gitdir := strings.TrimSpace(line[len(prefix):])
	if !filepath.IsAbs(gitdir) {
		gitdir = filepath.Join(path, gitdir)
	}

	return osfs.New(gitdir), nil
}

// isGitDir reports whether fs is rooted at a git directory, as it happens
// with bare repositories.
func isGitDir(fs billy.Filesystem) bool {
	if _, err := fs.Stat(plumbing.HEAD.String()); err != nil {
		return false
	}

	for _, dir := range []string{"refs", "objects"} {
		if fi, err := fs.Stat(dir); err == nil && fi.IsDir() {
			return true
		}
	}

	return false
}

// workingPrefix returns the position of path inside the worktree, the way
// git spells it in --show-prefix.
func workingPrefix(worktree, path string) string {
	if worktree == "" {
		return ""
	}

	rel, err := filepath.Rel(worktree, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}

	return filepath.ToSlash(rel) + "/"
}

// ResolveRevision resolves a revision name to its object identifier. Full
// hexadecimal ids resolve to themselves, "@" is an alias of HEAD, anything
// else is looked up as a reference following plumbing.RefRevParseRules.
// plumbing.ErrReferenceNotFound is returned when nothing matches.
func (r *Repository) ResolveRevision(rev plumbing.Revision) (plumbing.Hash, error) {
	if rev.IsHash() {
		return plumbing.NewHash(rev.String()), nil
	}

	name := rev.String()
	if name == "@" {
		name = plumbing.HEAD.String()
	}

	if plumbing.ReferenceName(name).Validate() != nil {
		return plumbing.ZeroHash, plumbing.ErrReferenceNotFound
	}

	for _, rule := range plumbing.RefRevParseRules {
		n := plumbing.ReferenceName(fmt.Sprintf(rule, name))
		ref, err := storer.ResolveReference(r.Storer, n)
		if err == plumbing.ErrReferenceNotFound {
			continue
		}

		if err != nil {
			return plumbing.ZeroHash, err
		}

		return ref.Hash(), nil
	}

	return plumbing.ZeroHash, plumbing.ErrReferenceNotFound
}

// References returns an iterator over every reference under refs/, sorted
// by name, with symbolic references already resolved to their target's id.
// Dangling symbolic references are skipped.
func (r *Repository) References() (storer.ReferenceIter, error) {
	iter, err := r.Storer.IterReferences()
	if err != nil {
		return nil, err
	}

	iter = storer.NewReferenceFilteredIter(func(ref *plumbing.Reference) bool {
		return ref.Name().IsRef()
	}, iter)

	var refs []*plumbing.Reference
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		resolved, err := storer.ResolveReference(r.Storer, ref.Name())
		if err == plumbing.ErrReferenceNotFound {
			return nil
		}

		if err != nil {
			return err
		}

		refs = append(refs, plumbing.NewHashReference(ref.Name(), resolved.Hash()))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return storer.NewReferenceSliceIter(refs), nil
}

// Prefix returns the path of the current directory relative to the top of
// the worktree.
func (r *Repository) Prefix() string {
	return r.prefix
}

// Toplevel returns the absolute path of the top of the worktree.
func (r *Repository) Toplevel() (string, error) {
	if r.worktree == "" {
		return "", ErrIsBareRepository
	}

	return r.worktree, nil
}

// IsBare reports whether the repository has no worktree.
func (r *Repository) IsBare() bool {
	return r.worktree == ""
}
