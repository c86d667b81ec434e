package main

import (
	"fmt"
	"io"
)

var version = "master"

type CmdVersion struct {
	out io.Writer
}

func (c *CmdVersion) Execute(args []string) error {
	fmt.Fprintf(c.out, "%s version %s\n", bin, version)
	return nil
}
