package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gostonefire/filecollections/record"
)

func newGetCmd(o *options) *cobra.Command {
	var index int64

	cmd := &cobra.Command{
		Use:   "get <file> [field=value]...",
		Short: "Look up a record",
		Long: `The get command looks up a record by its key fields, or by index for arrays.

Example:
  fcolctl get users.bin id=1
  fcolctl get ages.bin id=3 --json
  fcolctl get scores.bin --index 7`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, o, args[0], args[1:], index)
		},
	}

	cmd.Flags().Int64Var(&index, "index", -1, "Array index to read")

	return cmd
}

func runGet(cmd *cobra.Command, o *options, name string, assignments []string, index int64) error {
	c, err := openCollection(o, name)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	var r *record.Record
	switch {
	case c.array != nil:
		if index < 0 {
			return fmt.Errorf("arrays need --index")
		}
		r, err = c.array.Get(index)
	case c.set != nil:
		var probe *record.Record
		probe, _, err = parseAssignments(assignments, c.schema, nil)
		if err != nil {
			return err
		}
		r, err = c.set.Get(probe)
	default:
		var key *record.Record
		key, _, err = parseAssignments(assignments, c.schema, nil)
		if err != nil {
			return err
		}
		r, err = c.m.Get(key)
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if o.jsonOut {
		return printJSON(w, r.Values())
	}
	printf(w, "%s\n", r)

	return nil
}
