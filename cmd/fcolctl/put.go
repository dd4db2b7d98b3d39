package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPutCmd(o *options) *cobra.Command {
	var index int64

	cmd := &cobra.Command{
		Use:   "put <file> <field=value>...",
		Short: "Store a record",
		Long: `The put command stores a record given as field=value pairs. Fields not given
get their default value. Arrays need the index to store at, hash maps take key
and value fields mixed.

Example:
  fcolctl put users.bin id=1 name=Ada
  fcolctl put ages.bin id=3 age=30
  fcolctl put scores.bin --index 7 score=9.5`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPut(cmd, o, args[0], args[1:], index)
		},
	}

	cmd.Flags().Int64Var(&index, "index", -1, "Array index to store at")

	return cmd
}

func runPut(cmd *cobra.Command, o *options, name string, assignments []string, index int64) error {
	c, err := openCollection(o, name)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	switch {
	case c.array != nil:
		if index < 0 {
			return fmt.Errorf("arrays need --index")
		}
		r, _, err := parseAssignments(assignments, c.schema, nil)
		if err != nil {
			return err
		}
		if err = c.array.Set(index, r); err != nil {
			return err
		}
		printf(cmd.OutOrStdout(), "%d: %s\n", index, r)
	case c.set != nil:
		r, _, err := parseAssignments(assignments, c.schema, nil)
		if err != nil {
			return err
		}
		if err = c.set.Add(r); err != nil {
			return err
		}
		printf(cmd.OutOrStdout(), "%s\n", r)
	default:
		key, value, err := parseAssignments(assignments, c.schema, c.values)
		if err != nil {
			return err
		}
		if err = c.m.Set(key, value); err != nil {
			return err
		}
		printf(cmd.OutOrStdout(), "%s => %s\n", key, value)
	}

	return c.st.Sync()
}
