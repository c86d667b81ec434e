// Package memory is a storage backend base on memory
package memory

import (
	"github.com/emirpasic/gods/maps/treemap"

	"gopkg.in/src-d/go-revparse.v1/formats/config"
	"gopkg.in/src-d/go-revparse.v1/plumbing"
	"gopkg.in/src-d/go-revparse.v1/plumbing/storer"
)

// Storage is an implementation of storer.Storer that stores data on memory,
// being ephemeral. The use of this storage should be done in controlled
// environments, since the representation in memory of some repository can
// fill the machine memory. In the other hand this storage has the best
// performance.
type Storage struct {
	ConfigStorage
	ReferenceStorage
}

// NewStorage returns a new Storage base on memory
func NewStorage() *Storage {
	return &Storage{
		ReferenceStorage: ReferenceStorage{refs: treemap.NewWithStringComparator()},
		ConfigStorage:    ConfigStorage{},
	}
}

type ConfigStorage struct {
	config *config.Config
}

// SetConfig replaces the stored configuration.
func (c *ConfigStorage) SetConfig(cfg *config.Config) error {
	c.config = cfg
	return nil
}

// Config returns the stored configuration, an empty one if none was set.
func (c *ConfigStorage) Config() (*config.Config, error) {
	if c.config == nil {
		c.config = config.New()
	}

	return c.config, nil
}

// ReferenceStorage keeps references ordered by name, so IterReferences
// yields them in a stable order.
type ReferenceStorage struct {
	refs *treemap.Map
}

// SetReference stores the reference, replacing any previous one with the
// same name.
func (r *ReferenceStorage) SetReference(ref *plumbing.Reference) error {
	if ref != nil {
		r.refs.Put(ref.Name().String(), ref)
	}

	return nil
}

// Reference returns the reference with the given name.
func (r *ReferenceStorage) Reference(n plumbing.ReferenceName) (*plumbing.Reference, error) {
	ref, ok := r.refs.Get(n.String())
	if !ok {
		return nil, plumbing.ErrReferenceNotFound
	}

	return ref.(*plumbing.Reference), nil
}

// RemoveReference deletes the reference with the given name, if any.
func (r *ReferenceStorage) RemoveReference(n plumbing.ReferenceName) error {
	r.refs.Remove(n.String())
	return nil
}

// IterReferences returns an iterator over every stored reference, sorted by
// name.
func (r *ReferenceStorage) IterReferences() (storer.ReferenceIter, error) {
	var refs []*plumbing.Reference
	for _, v := range r.refs.Values() {
		refs = append(refs, v.(*plumbing.Reference))
	}

	return storer.NewReferenceSliceIter(refs), nil
}

// CountReferences returns the number of stored references.
func (r *ReferenceStorage) CountReferences() int {
	return r.refs.Size()
}
