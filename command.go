package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/YLivay/hexi/document"
	"github.com/YLivay/hexi/dump"
	"github.com/YLivay/hexi/log"
)

var errNotATerminal = errors.New("interactive mode requires standard output to be a terminal")

type options struct {
	document.Config

	interactive bool
	load        string
	jobs        int
	color       string
	verbose     bool
	logFile     string
}

func newRootCommand() *cobra.Command {
	opts := &options{
		Config: document.Config{Layout: document.DefaultLayout()},
	}

	cmd := &cobra.Command{
		Use:   "hexi [flags] FILE",
		Short: "Print the contents of a file as a hex dump",
		Long: `hexi prints a file as lines of hexadecimal byte codes, each line
prefixed with the offset of its first byte. Bytes are grouped into
chunks and chunks into sections.

Example: hexi -l 4 -n 4 -c 2 firmware.bin
Use "-" as FILE to read standard input.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.File = args[0]
			return run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	defaults := document.DefaultLayout()
	flags := cmd.Flags()
	flags.IntVarP(&opts.SectionLength, "section-length", "l", defaults.SectionLength, "bytes per section")
	flags.IntVarP(&opts.SectionsPerLine, "sections", "n", defaults.SectionsPerLine, "sections per line")
	flags.IntVarP(&opts.ChunkSize, "chunk-size", "c", defaults.ChunkSize, "bytes per chunk")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "browse the dump in a full screen viewer")
	flags.StringVar(&opts.load, "load", document.LoadAuto.String(), "how to load the file: auto, read or mmap")
	flags.IntVarP(&opts.jobs, "jobs", "j", 1, "goroutines formatting lines, 0 for one per CPU")
	flags.StringVar(&opts.color, "color", "never", "color the offset column: auto, always or never")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log diagnostics to stderr, also when --log-file is set")
	flags.StringVar(&opts.logFile, "log-file", "", "log diagnostics to this file")

	return cmd
}

func run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, opts *options) error {
	cleanupLogging, err := setupLogging(stderr, opts)
	if err != nil {
		return err
	}
	defer cleanupLogging()

	mode, err := parseLoadMode(opts.load)
	if err != nil {
		return err
	}
	offsetColor, err := newOffsetColor(opts.color)
	if err != nil {
		return err
	}
	if opts.interactive && !isTerminal(stdout) {
		return errNotATerminal
	}

	doc, err := document.Open(opts.Config, document.WithLoadMode(mode), document.WithStdin(stdin))
	if err != nil {
		return err
	}
	defer func() {
		if err := doc.Close(); err != nil {
			log.Println("Failed to close document:", err)
		}
	}()

	if opts.interactive {
		return NewApplication(doc).Run(ctx)
	}

	var scanner lineScanner
	if opts.jobs == 1 {
		scanner = dump.NewScanner(doc)
	} else {
		parallel := dump.NewParallelScanner(ctx, doc, opts.jobs, dump.DefaultBatchSize)
		defer parallel.Close()
		scanner = parallel
	}

	return writeDump(ctx, stdout, scanner, offsetColor)
}

// setupLogging points the default logger at the file and stderr as the flags
// ask for, both when both are given. The returned cleanup restores the previous output.
func setupLogging(stderr io.Writer, opts *options) (cleanup func(), err error) {
	previous := log.Writer()
	cleanup = func() { log.SetOutput(previous) }

	switch {
	case opts.logFile != "":
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		if opts.verbose {
			log.SetOutput(io.MultiWriter(f, stderr))
		} else {
			log.SetOutput(f)
		}
		cleanup = func() {
			log.SetOutput(previous)
			f.Close()
		}
	case opts.verbose:
		log.SetOutput(stderr)
	}

	return cleanup, nil
}

func parseLoadMode(s string) (document.LoadMode, error) {
	for _, mode := range []document.LoadMode{document.LoadAuto, document.LoadRead, document.LoadMmap} {
		if s == mode.String() {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("invalid load mode %q, expected auto, read or mmap", s)
}

// newOffsetColor returns nil when offsets should be printed plainly.
func newOffsetColor(mode string) (*color.Color, error) {
	switch mode {
	case "never":
		return nil, nil
	case "auto":
		// Disabled by the color package itself when stdout is not a terminal.
		return color.New(color.FgCyan), nil
	case "always":
		c := color.New(color.FgCyan)
		c.EnableColor()
		return c, nil
	default:
		return nil, fmt.Errorf("invalid color mode %q, expected auto, always or never", mode)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
