package main

import (
	"github.com/spf13/cobra"

	"github.com/gostonefire/filecollections/record"
)

func newDumpCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file>",
		Short: "Print every record of a collection",
		Long: `The dump command prints every record, oldest generation first. Array records
are prefixed with their index, hash map records are printed as key => value.

Example:
  fcolctl dump users.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, o, args[0])
		},
	}
}

func runDump(cmd *cobra.Command, o *options, name string) error {
	c, err := openCollection(o, name)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	w := cmd.OutOrStdout()
	switch {
	case c.array != nil:
		return c.array.Range(func(index int64, r *record.Record) error {
			printf(w, "%d: %s\n", index, r)
			return nil
		})
	case c.set != nil:
		return c.set.Range(func(r *record.Record) error {
			printf(w, "%s\n", r)
			return nil
		})
	default:
		return c.m.Range(func(key, value *record.Record) error {
			printf(w, "%s => %s\n", key, value)
			return nil
		})
	}
}
