package main

import (
	"github.com/spf13/cobra"
)

func newInfoCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Show the layout of a collection",
		Long: `The info command displays the collection kind, schema and every generation
with its address and capacity.

Example:
  fcolctl info users.bin
  fcolctl info users.bin --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, o, args[0])
		},
	}
}

func runInfo(cmd *cobra.Command, o *options, name string) error {
	c, err := openCollection(o, name)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	info, err := c.Info()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if o.jsonOut {
		return printJSON(w, info)
	}

	printf(w, "Kind:        %s\n", info.Kind)
	printf(w, "Schema:      %s\n", info.Schema)
	printf(w, "Address:     %d\n", info.Address)
	printf(w, "Capacity:    %d\n", info.Capacity)
	printf(w, "Generations: %d of %d\n", len(info.Generations), info.DirectorySlots)
	printf(w, "Store size:  %d bytes\n", info.StoreSize)
	for _, g := range info.Generations {
		printf(w, "  %2d: address %d, capacity %d, slot size %d", g.Generation, g.Address, g.Capacity, g.SlotSize)
		if g.ProbeSize > 0 {
			printf(w, ", probe %d over %d", g.ProbeSize, g.ProbeRange)
		}
		printf(w, "\n")
	}

	return nil
}
