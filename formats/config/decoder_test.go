package config_test

import (
	"bytes"

	"gopkg.in/src-d/go-revparse.v1/formats/config"

	. "gopkg.in/check.v1"
)

type DecoderSuite struct{}

var _ = Suite(&DecoderSuite{})

var fixtures = []struct {
	Raw    string
	Config *config.Config
}{
	{
		Raw:    "",
		Config: config.New(),
	},
	{
		Raw: `
[core]
	repositoryformatversion = 0
	bare = true
`,
		Config: config.New().
			AddOption("core", "", "repositoryformatversion", "0").
			AddOption("core", "", "bare", "true"),
	},
	{
		Raw: `
; a comment
[core]
	worktree = ../work
[remote "origin"]
	url = git@github.com:src-d/go-git.git
	fetch = +refs/heads/*:refs/remotes/origin/*
`,
		Config: config.New().
			AddOption("core", "", "worktree", "../work").
			AddOption("remote", "origin", "url", "git@github.com:src-d/go-git.git").
			AddOption("remote", "origin", "fetch", "+refs/heads/*:refs/remotes/origin/*"),
	},
}

func (s *DecoderSuite) TestDecode(c *C) {
	for idx, fixture := range fixtures {
		r := bytes.NewReader([]byte(fixture.Raw))
		d := config.NewDecoder(r)
		cfg := &config.Config{}
		err := d.Decode(cfg)
		c.Assert(err, IsNil, Commentf("decoder error for fixture: %d", idx))
		c.Assert(cfg, DeepEquals, fixture.Config, Commentf("bad result for fixture: %d", idx))
	}
}

func (s *DecoderSuite) TestDecodeValuelessKey(c *C) {
	cfg := config.New()
	err := config.NewDecoder(bytes.NewBufferString("[core]\n\tbare\n")).Decode(cfg)
	c.Assert(err, IsNil)
	c.Assert(cfg.GetBool("core", "", "bare", false), Equals, true)
}

func (s *DecoderSuite) TestDecodeFailsSyntax(c *C) {
	cfg := config.New()
	err := config.NewDecoder(bytes.NewBufferString("[core\n")).Decode(cfg)
	c.Assert(err, NotNil)
}
