// Package config implements decoding of git config files.
// Reference: https://git-scm.com/docs/git-config
package config

// New creates a new config instance.
func New() *Config {
	return &Config{}
}

// Config contains all the sections, comments and includes from a config file.
type Config struct {
	Sections Sections
}

const (
	// NoSubsection token is passed to Config.Section and Config.SetSection to
	// represent the absence of a section.
	NoSubsection = ""
)

// Section returns a existing section with the given name or creates a new one.
func (c *Config) Section(name string) *Section {
	for i := len(c.Sections) - 1; i >= 0; i-- {
		s := c.Sections[i]
		if s.IsName(name) {
			return s
		}
	}

	s := &Section{Name: name}
	c.Sections = append(c.Sections, s)
	return s
}

// AddOption adds an option to a given section and subsection. Use the
// NoSubsection constant for the subsection argument if no subsection is wanted.
func (c *Config) AddOption(section string, subsection string, key string, value string) *Config {
	if subsection == "" {
		c.Section(section).AddOption(key, value)
	} else {
		c.Section(section).Subsection(subsection).AddOption(key, value)
	}

	return c
}

// Get returns the last value of the given key, the empty string if it is
// not set. Since git v1.8.1-rc1, if there are multiple definitions of a key,
// the last one wins.
func (c *Config) Get(section, subsection, key string) string {
	return c.options(section, subsection).Get(key)
}

// GetBool interprets the value of the given key as a git boolean. Keys
// without a value ("[core] bare") are true.
func (c *Config) GetBool(section, subsection, key string, def bool) bool {
	opts := c.options(section, subsection)
	if !opts.Has(key) {
		return def
	}

	switch c.Get(section, subsection, key) {
	case "", "true", "yes", "on", "1":
		return true
	case "false", "no", "off", "0":
		return false
	default:
		return def
	}
}

// options returns the options of an existing section or subsection, nil if
// there is none. Unlike Section it never creates anything.
func (c *Config) options(section, subsection string) Options {
	for i := len(c.Sections) - 1; i >= 0; i-- {
		s := c.Sections[i]
		if !s.IsName(section) {
			continue
		}

		if subsection == NoSubsection {
			return s.Options
		}

		for j := len(s.Subsections) - 1; j >= 0; j-- {
			if ss := s.Subsections[j]; ss.IsName(subsection) {
				return ss.Options
			}
		}

		return nil
	}

	return nil
}
