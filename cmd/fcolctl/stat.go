package main

import (
	"github.com/spf13/cobra"
)

func newStatCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stat <file>",
		Short: "Count records in a collection",
		Long: `The stat command reads every slot and reports the number of records per
generation, corrupt records and the fill factor.

Example:
  fcolctl stat users.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStat(cmd, o, args[0])
		},
	}
}

func runStat(cmd *cobra.Command, o *options, name string) error {
	c, err := openCollection(o, name)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	stat, err := c.Stat()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if o.jsonOut {
		return printJSON(w, stat)
	}

	printf(w, "Records:     %d\n", stat.Records)
	printf(w, "Corrupt:     %d\n", stat.CorruptRecords)
	printf(w, "Fill factor: %.3f\n", stat.FillFactor)
	for i, n := range stat.GenerationRecords {
		printf(w, "  %2d: %d\n", i, n)
	}

	return nil
}
