// Command sitebuilder turns a directory of markdown documents into a static HTML site.
package main

import (
	"os"

	"git.home.luguber.info/inful/sitebuilder/cmd/sitebuilder/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
