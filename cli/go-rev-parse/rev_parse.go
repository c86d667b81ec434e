package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"
	"gopkg.in/src-d/go-billy.v4/osfs"

	"gopkg.in/src-d/go-revparse.v1"
	"gopkg.in/src-d/go-revparse.v1/storage/filesystem"
)

type CmdRevParse struct {
	cmd

	Dir    string `short:"C" value-name:"path" description:"Run as if started in <path> instead of the current working directory." default:"."`
	GitDir string `long:"git-dir" value-name:"path" description:"Set the path to the repository, the working directory is taken as the top of the worktree."`

	out        io.Writer
	doubleDash bool
	tail       []string
}

// keepDoubleDash records what follows the first "--" after the command
// name. go-flags passes those arguments through but drops the "--" itself.
func (c *CmdRevParse) keepDoubleDash(args []string) {
	for i, arg := range args {
		if arg != revParseCmd {
			continue
		}

		for j, arg := range args[i+1:] {
			if arg == "--" {
				c.doubleDash = true
				c.tail = args[i+j+2:]
				return
			}
		}

		return
	}
}

// revParseArgs puts back the "--" go-flags removed from args.
func (c *CmdRevParse) revParseArgs(args []string) []string {
	if !c.doubleDash || len(args) < len(c.tail) {
		return args
	}

	head := args[:len(args)-len(c.tail)]
	out := make([]string, 0, len(args)+1)
	out = append(out, head...)
	out = append(out, "--")
	return append(out, c.tail...)
}

func (c *CmdRevParse) Execute(args []string) error {
	args = c.revParseArgs(args)
	if c.out == nil {
		c.out = os.Stdout
	}

	log, err := c.logger()
	if err != nil {
		return err
	}

	defer log.Sync()

	r, err := c.open()
	if err != nil {
		return err
	}

	log.Debug("repository opened",
		zap.String("prefix", r.Prefix()),
		zap.Bool("bare", r.IsBare()),
		zap.Int("args", len(args)),
	)

	p, err := revparse.NewArgParser(r, &revparse.ParseOptions{
		Output: c.out,
		Logger: log,
	})
	if err != nil {
		return err
	}

	err = p.Parse(args)
	log.Debug("done", zap.Int("revisions", p.Revisions()), zap.Error(err))
	return err
}

func (c *CmdRevParse) open() (*revparse.Repository, error) {
	dir, err := homedir.Expand(c.Dir)
	if err != nil {
		return nil, err
	}

	if c.GitDir == "" {
		return revparse.PlainOpenWithOptions(dir, &revparse.PlainOpenOptions{
			DetectDotGit: true,
		})
	}

	gitDir, err := homedir.Expand(c.GitDir)
	if err != nil {
		return nil, err
	}

	if dir, err = filepath.Abs(dir); err != nil {
		return nil, err
	}

	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(dir, gitDir)
	}

	if _, err := os.Stat(gitDir); err != nil {
		if os.IsNotExist(err) {
			return nil, revparse.ErrRepositoryNotExists
		}

		return nil, err
	}

	return revparse.Open(filesystem.NewStorage(osfs.New(gitDir)), dir, "")
}
