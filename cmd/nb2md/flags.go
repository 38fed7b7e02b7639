package main

import (
	flag "github.com/spf13/pflag"
)

// convertFlags holds all flags for the nb2md CLI.
type convertFlags struct {
	output     string
	title      string
	categories string
	tags       []string
	language   string
	extract    bool
	config     string
	dateFormat string
	quiet      bool
	verbose    bool
	version    bool

	// set tracks which flags were given explicitly, for config merging.
	set map[string]bool
}

// parseFlags parses the command line. Returns the flags, the positional
// arguments (the notebook path), and any parse error.
func parseFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("nb2md", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output path for the .md file (default: <date>-<name>.md)")
	fs.StringVarP(&f.title, "title", "t", "", "post title (default: derived from the notebook filename)")
	fs.StringVarP(&f.categories, "categories", "c", "", "post categories")
	fs.StringSliceVar(&f.tags, "tags", nil, "post tags (comma-separated)")
	fs.StringVar(&f.language, "language", "", "fence language for code cells")
	fs.BoolVar(&f.extract, "extract-images", false, "write images as side files instead of embedding")
	fs.StringVar(&f.config, "config", "", "config file name or path")
	fs.StringVar(&f.dateFormat, "date-format", "", "date prefix format for default output names (tokens: YYYY MM DD)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "suppress progress output")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print debug output")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() {
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}

	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})

	return f, fs.Args(), nil
}
