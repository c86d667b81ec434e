package filesystem

import (
	"os"

	"gopkg.in/src-d/go-revparse.v1/formats/config"
	"gopkg.in/src-d/go-revparse.v1/storage/filesystem/internal/dotgit"
)

type ConfigStorage struct {
	dir *dotgit.DotGit
}

// Config decodes the repository config file. A missing file yields an empty
// configuration.
func (c *ConfigStorage) Config() (conf *config.Config, err error) {
	cfg := config.New()

	f, err := c.dir.Config()
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return nil, err
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err = config.NewDecoder(f).Decode(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
