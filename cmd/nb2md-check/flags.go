package main

import (
	flag "github.com/spf13/pflag"
)

// checkFlags holds all flags for the nb2md-check CLI.
type checkFlags struct {
	preview  bool
	report   bool
	notebook string
	quiet    bool
	version  bool
}

// parseFlags parses the command line. Returns the flags, the positional
// arguments (the markdown path), and any parse error.
func parseFlags(args []string) (*checkFlags, []string, error) {
	fs := flag.NewFlagSet("nb2md-check", flag.ContinueOnError)
	f := &checkFlags{}

	fs.BoolVar(&f.preview, "preview", false, "write an HTML preview next to the markdown file")
	fs.BoolVar(&f.report, "report", false, "write a timestamped plain-text debug report")
	fs.StringVar(&f.notebook, "notebook", "", "original notebook path for image count cross-reference")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "print only the summary")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() {
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
