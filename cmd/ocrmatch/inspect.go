package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/huichen/ocrmatch/engine"
	"github.com/huichen/ocrmatch/storage"
	"github.com/spf13/cobra"
)

func newInspectCommand(a *app) *cobra.Command {
	var indexPath, storageEngine string
	var rowIds []uint
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print index metadata and selected rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := engine.ReadIndexFile(indexPath, storageEngine)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			key := color.New(color.Bold)
			meta := index.Meta

			key.Fprint(w, "version    ")
			fmt.Fprintln(w, meta.Version)
			key.Fprint(w, "built at   ")
			fmt.Fprintln(w, meta.BuiltAt.Format(time.RFC3339))
			key.Fprint(w, "digest     ")
			fmt.Fprintln(w, index.Digest)
			key.Fprint(w, "rows       ")
			fmt.Fprintln(w, meta.TotalRows)
			key.Fprint(w, "tokens     ")
			fmt.Fprintln(w, meta.UniqueTokens)
			key.Fprint(w, "ngram      ")
			fmt.Fprintln(w, meta.NgramSize)
			key.Fprint(w, "columns    ")
			fmt.Fprintln(w, strings.Join(meta.Columns.Names(), ", "))
			key.Fprint(w, "sources    ")
			fmt.Fprintln(w, strings.Join(meta.Sources, ", "))

			for _, id := range rowIds {
				row, found := index.Row(uint64(id))
				if !found {
					color.New(color.FgRed).Fprintf(w, "row %d not found\n", id)
					continue
				}
				fmt.Fprintf(w, "row %d\t%s\t%s\t%s\t%s:%d\n", row.Id, row.Field1, row.Field2, row.Order,
					row.Provenance.SourceFile, row.Provenance.RowIndex)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&indexPath, "index", "", "index file")
	cmd.Flags().StringVar(&storageEngine, "engine", storage.DefaultStorageEngine, "storage engine: bolt, kv or sqlite")
	cmd.Flags().UintSliceVar(&rowIds, "row", nil, "row ids to print")
	_ = cmd.MarkFlagRequired("index")
	return cmd
}
