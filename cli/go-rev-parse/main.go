package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

const (
	bin         = "go-rev-parse"
	revParseBin = "git-rev-parse"
	revParseCmd = "rev-parse"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	if filepath.Base(argv[0]) == revParseBin {
		argv = append([]string{bin, revParseCmd}, argv[1:]...)
	}

	revParse := &CmdRevParse{out: stdout}
	revParse.keepDoubleDash(argv[1:])

	// rev-parse has its own option grammar, anything go-flags does not know
	// is handed over untouched and in order. Nothing after "--" is parsed.
	parser := flags.NewNamedParser(bin, flags.HelpFlag|flags.PassDoubleDash|flags.IgnoreUnknown)
	parser.AddCommand(revParseCmd, "Pick out and massage parameters.", "", revParse)
	parser.AddCommand("version", "Show the version information.", "", &CmdVersion{out: stdout})

	_, err := parser.ParseArgs(argv[1:])
	if err != nil {
		if err, ok := err.(*flags.Error); ok {
			if err.Type == flags.ErrHelp {
				fmt.Fprintln(stdout, err)
				return 0
			}

			fmt.Fprintln(stderr, err)
			parser.WriteHelp(stdout)
			return 1
		}

		fmt.Fprintf(stderr, "ERROR: %s\n", err)
		return 1
	}

	return 0
}

type cmd struct {
	Verbose bool `short:"v" long:"verbose" description:"Activates the verbose mode"`
}

func (c *cmd) logger() (*zap.Logger, error) {
	if !c.Verbose {
		return zap.NewNop(), nil
	}

	return zap.NewDevelopment()
}
