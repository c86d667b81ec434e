// Package filesystem is a storage backend base on filesystems
package filesystem

import (
	"gopkg.in/src-d/go-billy.v4"

	"gopkg.in/src-d/go-revparse.v1/storage/filesystem/internal/dotgit"
)

// Storage is an implementation of storer.Storer that reads data from disk in
// the standard git format (this is, the .git directory). Zero values of this
// type are not safe to use, see the NewStorage function below.
type Storage struct {
	fs  billy.Filesystem
	dir *dotgit.DotGit

	ReferenceStorage
	ConfigStorage
}

// NewStorage returns a new Storage backed by a given `billy.Filesystem`
func NewStorage(fs billy.Filesystem) *Storage {
	dir := dotgit.New(fs)
	return &Storage{
		fs:  fs,
		dir: dir,

		ReferenceStorage: ReferenceStorage{dir: dir},
		ConfigStorage:    ConfigStorage{dir: dir},
	}
}

// Filesystem returns the underlying filesystem
func (s *Storage) Filesystem() billy.Filesystem {
	return s.fs
}
