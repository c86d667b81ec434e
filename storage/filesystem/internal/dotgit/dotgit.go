// https://github.com/git/git/blob/master/Documentation/gitrepository-layout.txt
package dotgit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	stdioutil "io/ioutil"
	"os"
	"sort"
	"strings"

	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/util"

	"gopkg.in/src-d/go-revparse.v1/plumbing"
)

const (
	packedRefsPath = "packed-refs"
	configPath     = "config"
	refsPath       = "refs"
)

var (
	// ErrNotFound is returned by New when the path is not found.
	ErrNotFound = errors.New("path not found")
	// ErrPackedRefsDuplicatedRef is returned when a duplicated reference is
	// found in the packed-ref file. This is usually the case for corrupted git
	// repositories.
	ErrPackedRefsDuplicatedRef = errors.New("duplicated ref found in packed-ref file")
	// ErrPackedRefsBadFormat is returned when the packed-ref file corrupt.
	ErrPackedRefsBadFormat = errors.New("malformed packed-ref")
	// ErrRefBadFormat is returned when a loose reference file holds neither
	// an object id nor a symbolic target.
	ErrRefBadFormat = errors.New("malformed reference file")
)

// The DotGit type represents a local git repository on disk. This
// type is not zero-value-safe, use the New function to initialize it.
type DotGit struct {
	fs billy.Filesystem
}

// New returns a DotGit value ready to be used. The fs argument must be rooted
// at a git repository directory (e.g. "/foo/bar/.git").
func New(fs billy.Filesystem) *DotGit {
	return &DotGit{fs: fs}
}

// Fs returns the underlying filesystem of the DotGit folder.
func (d *DotGit) Fs() billy.Filesystem {
	return d.fs
}

// Config returns a reader for the repository config file.
func (d *DotGit) Config() (billy.File, error) {
	return d.fs.Open(configPath)
}

// SetRef writes a loose reference file.
func (d *DotGit) SetRef(r *plumbing.Reference) error {
	var content string
	switch r.Type() {
	case plumbing.SymbolicReference:
		content = fmt.Sprintf("ref: %s\n", r.Target())
	case plumbing.HashReference:
		content = fmt.Sprintln(r.Hash().String())
	default:
		return fmt.Errorf("cannot write reference %s of type %s", r.Name(), r.Type())
	}

	return util.WriteFile(d.fs, r.Name().String(), []byte(content), 0644)
}

// Refs scans the git directory collecting references, which it returns
// sorted by name. Symbolic references are included unresolved, loose
// references take precedence over packed ones.
func (d *DotGit) Refs() ([]*plumbing.Reference, error) {
	seen := make(map[plumbing.ReferenceName]*plumbing.Reference)

	packed, err := d.findPackedRefs()
	if err != nil {
		return nil, err
	}

	for _, r := range packed {
		seen[r.Name()] = r
	}

	if err := d.addRefsFromRefDir(seen); err != nil {
		return nil, err
	}

	if err := d.addRefFromHEAD(seen); err != nil {
		return nil, err
	}

	refs := make([]*plumbing.Reference, 0, len(seen))
	for _, r := range seen {
		refs = append(refs, r)
	}

	sort.Slice(refs, func(i, j int) bool {
		return refs[i].Name() < refs[j].Name()
	})

	return refs, nil
}

// Ref returns the reference for a given reference name.
func (d *DotGit) Ref(name plumbing.ReferenceName) (*plumbing.Reference, error) {
	ref, err := d.readReferenceFile(".", name.String())
	if err == nil {
		return ref, nil
	}

	if !os.IsNotExist(err) && err != ErrRefBadFormat {
		return nil, err
	}

	return d.packedRef(name)
}

func (d *DotGit) findPackedRefs() (refs []*plumbing.Reference, err error) {
	f, err := d.fs.Open(packedRefsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	defer checkClose(f, &err)

	seen := make(map[plumbing.ReferenceName]bool)
	s := bufio.NewScanner(f)
	for s.Scan() {
		ref, err := d.processLine(s.Text())
		if err != nil {
			return nil, err
		}

		if ref == nil {
			continue
		}

		if seen[ref.Name()] {
			return nil, ErrPackedRefsDuplicatedRef
		}

		seen[ref.Name()] = true
		refs = append(refs, ref)
	}

	return refs, s.Err()
}

func (d *DotGit) packedRef(name plumbing.ReferenceName) (*plumbing.Reference, error) {
	refs, err := d.findPackedRefs()
	if err != nil {
		return nil, err
	}

	for _, ref := range refs {
		if ref.Name() == name {
			return ref, nil
		}
	}

	return nil, plumbing.ErrReferenceNotFound
}

// process lines from a packed-refs file
func (d *DotGit) processLine(line string) (*plumbing.Reference, error) {
	if len(line) == 0 {
		return nil, nil
	}

	switch line[0] {
	case '#': // comment - ignore
		return nil, nil
	case '^': // annotated tag commit of the previous line - ignore
		return nil, nil
	default:
		ws := strings.Split(line, " ") // hash then ref
		if len(ws) != 2 || !plumbing.IsHash(ws[0]) {
			return nil, ErrPackedRefsBadFormat
		}

		return plumbing.NewReferenceFromStrings(ws[1], ws[0]), nil
	}
}

func (d *DotGit) addRefsFromRefDir(refs map[plumbing.ReferenceName]*plumbing.Reference) error {
	return d.walkReferencesTree(refs, []string{refsPath})
}

func (d *DotGit) walkReferencesTree(refs map[plumbing.ReferenceName]*plumbing.Reference, relPath []string) error {
	files, err := d.fs.ReadDir(d.fs.Join(relPath...))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}

	for _, f := range files {
		newRelPath := append(append([]string(nil), relPath...), f.Name())
		if f.IsDir() {
			if err = d.walkReferencesTree(refs, newRelPath); err != nil {
				return err
			}

			continue
		}

		name := plumbing.ReferenceName(strings.Join(newRelPath, "/"))
		if name.Validate() != nil {
			continue
		}

		ref, err := d.readReferenceFile(".", name.String())
		if err == ErrRefBadFormat {
			continue
		}

		if err != nil {
			return err
		}

		refs[ref.Name()] = ref
	}

	return nil
}

func (d *DotGit) addRefFromHEAD(refs map[plumbing.ReferenceName]*plumbing.Reference) error {
	ref, err := d.readReferenceFile(".", plumbing.HEAD.String())
	if err != nil {
		if os.IsNotExist(err) || err == ErrRefBadFormat {
			return nil
		}

		return err
	}

	refs[ref.Name()] = ref
	return nil
}

func (d *DotGit) readReferenceFile(path, name string) (ref *plumbing.Reference, err error) {
	path = d.fs.Join(path, d.fs.Join(strings.Split(name, "/")...))
	fi, err := d.fs.Stat(path)
	if err != nil {
		return nil, err
	}

	if fi.IsDir() {
		return nil, os.ErrNotExist
	}

	f, err := d.fs.Open(path)
	if err != nil {
		return nil, err
	}

	defer checkClose(f, &err)

	b, err := stdioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	line := strings.TrimSpace(string(b))
	if !strings.HasPrefix(line, "ref: ") && !plumbing.IsHash(line) {
		return nil, ErrRefBadFormat
	}

	return plumbing.NewReferenceFromStrings(name, line), nil
}

// checkClose is used with defer to close the given io.Closer and check its
// returned error value. If Close returns an error and the given *error
// is not nil, *error is set to the error returned by Close.
func checkClose(c io.Closer, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}
