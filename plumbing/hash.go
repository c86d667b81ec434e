package plumbing

import "encoding/hex"

// Hash SHA1 hashed content
type Hash [20]byte

// ZeroHash is Hash with value zero
var ZeroHash Hash

// HexSize is the length of the hexadecimal form of a Hash.
const HexSize = 40

// NewHash return a new Hash from a hexadecimal hash representation
func NewHash(s string) Hash {
	b, _ := hex.DecodeString(s)

	var h Hash
	copy(h[:], b)

	return h
}

// IsHash returns true if the given string is a valid full hexadecimal
// object identifier.
func IsHash(s string) bool {
	if len(s) != HexSize {
		return false
	}

	_, err := hex.DecodeString(s)
	return err == nil
}

// IsZero reports whether h is the zero hash.
func (h Hash) IsZero() bool {
	var empty Hash
	return h == empty
}

// String returns the canonical, lowercase, fixed-width hexadecimal form.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Revision represents a git revision
// to get more details about git revisions
// please check git manual page :
// https://www.kernel.org/pub/software/scm/git/docs/gitrevisions.html
type Revision string

func (r Revision) String() string {
	return string(r)
}

// IsHash reports whether the revision is spelled as a full object id.
func (r Revision) IsHash() bool {
	return IsHash(string(r))
}
