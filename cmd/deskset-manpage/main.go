package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/deskset/cmd/deskset"
	"github.com/arthur-debert/deskset/internal/version"
)

func main() {
	rootCmd := deskset.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "DESKSET",
		Section: "1",
		Source:  "deskset " + version.Version,
		Manual:  "deskset manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
