// Package storer defines the interfaces to store and enumerate references.
package storer

// Storer is a full storer for the data rev-parse reads: references and the
// repository configuration.
type Storer interface {
	ReferenceStorer
	ConfigStorer
}
