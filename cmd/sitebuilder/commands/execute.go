package commands

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/version"
)

const usage = "sitebuilder [flags] SOURCE [TARGET]"

// Execute parses args, runs the build and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cli := &CLI{}
	global := &Global{Stdout: stdout, Stderr: stderr}

	exitCode := -1
	exit := func(code int) {
		if exitCode < 0 {
			exitCode = code
		}
	}

	parser, err := kong.New(cli,
		kong.Name("sitebuilder"),
		kong.Description("Generate a static HTML site from a directory of markdown documents."),
		kong.Vars{"version": version.String()},
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
		kong.Bind(global),
	)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return ferrors.ExitInternal
	}

	kctx, err := parser.Parse(args)
	if exitCode >= 0 {
		// --help or --version already wrote their output.
		return exitCode
	}

	if err != nil {
		err = ferrors.UsageError("invalid arguments").
			WithCause(err).
			Build()
	} else {
		err = kctx.Run(global)
	}
	if err == nil {
		return ferrors.ExitOK
	}

	ferrors.NewCLIErrorAdapter(cli.Verbose, global.logger()).WithOutput(stderr, exit).HandleError(err)
	if ferrors.HasCategory(err, ferrors.CategoryUsage) {
		_, _ = fmt.Fprintf(stderr, "Usage: %s\nRun 'sitebuilder --help' for details.\n", usage)
	}
	return exitCode
}
