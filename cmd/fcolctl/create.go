package main

import (
	"fmt"

	"github.com/spf13/cobra"

	fc "github.com/gostonefire/filecollections"
	"github.com/gostonefire/filecollections/record"
)

func newCreateCmd(o *options) *cobra.Command {
	var kind, schemaText, valuesText string
	var base, probe int64

	cmd := &cobra.Command{
		Use:   "create <file>",
		Short: "Create a new collection file",
		Long: `The create command creates a new file holding an empty collection.

Schemas are comma separated lists of name:layout fields with optional :key and
:default=value parts. Layouts are int8 to int64, uint8 to uint64, float32,
float64, bool, string(N) and bytes(N).

Example:
  fcolctl create users.bin --kind hashset --schema "id:uint32:key, name:string(20)"
  fcolctl create ages.bin --kind hashmap --schema "id:uint32" --values "age:uint32" --base 2
  fcolctl create scores.bin --kind array --schema "score:float64"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, o, args[0], header{Kind: kind, Schema: schemaText, Values: valuesText, ProbeSize: probe}, base)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", fc.KindHashset, "Collection kind: array, hashset or hashmap")
	cmd.Flags().StringVar(&schemaText, "schema", "", "Record schema, the key schema for hash maps")
	cmd.Flags().StringVar(&valuesText, "values", "", "Value schema for hash maps")
	cmd.Flags().Int64Var(&base, "base", 0, "Capacity of the first generation (default 1024)")
	cmd.Flags().Int64Var(&probe, "probe", 0, "Probe window length of hashed collections (default 75)")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runCreate(cmd *cobra.Command, o *options, name string, hdr header, base int64) (err error) {
	schema, err := record.ParseSchema(hdr.Schema)
	if err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}

	var values *record.Schema
	if hdr.Kind == fc.KindHashmap {
		values, err = record.ParseSchema(hdr.Values)
		if err != nil {
			return fmt.Errorf("invalid value schema: %w", err)
		}
	}

	st, err := o.openStore(name, true)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	// The header area is written first so that the collection root is allocated after it
	hdr.Address = headerLength
	if err = writeHeader(st, hdr); err != nil {
		return err
	}

	cfg := fc.Conf{BaseCapacity: base, ProbeSize: hdr.ProbeSize, Logger: o.logger()}
	switch hdr.Kind {
	case fc.KindArray:
		_, err = fc.NewArray(st, schema, cfg)
	case fc.KindHashset:
		_, err = fc.NewHashset(st, schema, cfg)
	case fc.KindHashmap:
		_, err = fc.NewHashmap(st, schema, values, cfg)
	default:
		err = fmt.Errorf("unknown collection kind %q", hdr.Kind)
	}
	if err != nil {
		return err
	}

	printf(cmd.OutOrStdout(), "Created %s in %s\n", hdr.Kind, name)

	return st.Sync()
}
