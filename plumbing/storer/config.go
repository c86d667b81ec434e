package storer

import "gopkg.in/src-d/go-revparse.v1/formats/config"

// ConfigStorer gives access to the repository configuration.
type ConfigStorer interface {
	Config() (*config.Config, error)
}
