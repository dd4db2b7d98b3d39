package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// options - Global flags shared by every command
type options struct {
	verbose bool
	jsonOut bool
	mmap    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "fcolctl",
		Short: "Create, inspect and edit file backed collections",
		Long: `fcolctl creates and edits arrays, hash sets and hash maps of fixed size
records kept in a single file. The file starts with a small header describing
the collection so that later commands only need the file name.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging to stderr")
	cmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "Output in JSON format")
	cmd.PersistentFlags().BoolVar(&opts.mmap, "mmap", false, "Access the file through a memory mapping")

	cmd.AddCommand(
		newCreateCmd(opts),
		newInfoCmd(opts),
		newStatCmd(opts),
		newPutCmd(opts),
		newGetCmd(opts),
		newDumpCmd(opts),
	)

	return cmd
}

// logger - Returns a development logger under --verbose, otherwise a logger discarding everything
func (o *options) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// printJSON outputs data as indented JSON
func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printf writes formatted text, output errors are not interesting to a command line tool
func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
