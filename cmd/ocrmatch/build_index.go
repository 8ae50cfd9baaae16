package main

import (
	"github.com/fatih/color"
	"github.com/huichen/ocrmatch/engine"
	"github.com/huichen/ocrmatch/refdata"
	"github.com/huichen/ocrmatch/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBuildIndexCommand(a *app) *cobra.Command {
	var source, out, storageEngine string
	cmd := &cobra.Command{
		Use:   "build-index",
		Short: "Build an index artifact from reference CSV/TSV files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := refdata.ScanSources(source)
			if err != nil {
				return err
			}
			cache, err := refdata.NewTableCache(len(paths))
			if err != nil {
				return err
			}
			snapshot, err := refdata.LoadSnapshot(paths, a.config.Columns, cache, a.logger)
			if err != nil {
				return err
			}
			index, err := engine.BuildIndex(snapshot, a.config.Normalize, a.config.Match.NgramSize)
			if err != nil {
				return err
			}
			if err := engine.WriteIndexFile(out, storageEngine, index); err != nil {
				return err
			}

			a.logger.Info("index written",
				zap.String("path", out),
				zap.String("storage", storageEngine),
				zap.Int("rows", index.Meta.TotalRows),
				zap.Int("tokens", index.Meta.UniqueTokens))
			color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "indexed %d rows (%d skipped) from %d file(s) into %s\n",
				index.Meta.TotalRows, snapshot.Skipped, len(paths), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "reference file or directory")
	cmd.Flags().StringVar(&out, "out", "", "index file to write")
	cmd.Flags().StringVar(&storageEngine, "engine", storage.DefaultStorageEngine, "storage engine: bolt, kv or sqlite")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
