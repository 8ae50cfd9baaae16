package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/huichen/ocrmatch/engine"
	"github.com/huichen/ocrmatch/refdata"
	"github.com/huichen/ocrmatch/storage"
	"github.com/huichen/ocrmatch/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// 输出的一行JSON
type resultRecord struct {
	RunId       string            `json:"run_id"`
	Document    string            `json:"document"`
	Outcome     types.Outcome     `json:"outcome"`
	Reason      types.Reason      `json:"reason,omitempty"`
	Strategy    types.Strategy    `json:"strategy"`
	Field1      string            `json:"field1"`
	Field2      string            `json:"field2"`
	Warnings    []string          `json:"warnings"`
	RecallCount int               `json:"recall_count"`
	Candidates  []candidateRecord `json:"candidates"`
	ConfigSHA   string            `json:"config_sha,omitempty"`
	IndexDigest string            `json:"index_digest"`
	Stale       bool              `json:"stale_index,omitempty"`

	// 第一候选在源文件中的原始行
	SourceRow map[string]string `json:"source_row,omitempty"`
}

type candidateRecord struct {
	Id          uint64  `json:"id"`
	Field1      string  `json:"field1"`
	Field2      string  `json:"field2"`
	Order       string  `json:"order,omitempty"`
	Score       float64 `json:"score"`
	Field1Score float64 `json:"field1_score"`
	Field2Score float64 `json:"field2_score"`
}

type failureRecord struct {
	RunId    string `json:"run_id"`
	Document string `json:"document"`
	Error    string `json:"error"`
}

func newMatchCommand(a *app) *cobra.Command {
	var indexPath, source, storageEngine string
	var allowStale, showRow bool
	cmd := &cobra.Command{
		Use:   "match [flags] FILE|DIR...",
		Short: "Match OCR text files and print one JSON line per document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectTextFiles(args)
			if err != nil {
				return err
			}
			index, err := engine.ReadIndexFile(indexPath, storageEngine)
			if err != nil {
				return err
			}

			options := a.config.EngineOptions()
			options.AllowStaleIndex = allowStale
			options.Logger = a.logger
			cache, err := refdata.NewTableCache(0)
			if err != nil {
				return err
			}
			if source != "" {
				paths, err := refdata.ScanSources(source)
				if err != nil {
					return err
				}
				if options.SourceDigest, err = refdata.SourceDigest(paths, cache); err != nil {
					return err
				}
			}

			var searcher engine.Engine
			if err := searcher.Init(index, options); err != nil {
				return err
			}
			defer searcher.Close()

			batch, err := searcher.MatchFiles(files)
			if err != nil {
				return err
			}
			if err := writeRecords(cmd.OutOrStdout(), batch, searcher.Stale(), showRow, cache, a.logger); err != nil {
				return err
			}
			printSummary(cmd.ErrOrStderr(), batch)
			return nil
		},
	}
	cmd.Flags().StringVar(&indexPath, "index", "", "index file")
	cmd.Flags().StringVar(&source, "source", "", "reference file or directory used to verify the index digest")
	cmd.Flags().StringVar(&storageEngine, "engine", storage.DefaultStorageEngine, "storage engine: bolt, kv or sqlite")
	cmd.Flags().BoolVar(&allowStale, "allow-stale", false, "use the index even if its digest does not match the source")
	cmd.Flags().BoolVar(&showRow, "show-row", false, "include the source row of the top candidate")
	_ = cmd.MarkFlagRequired("index")
	return cmd
}

// 展开参数中的目录，目录只取.txt文件
func collectTextFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", arg)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "read dir %s", arg)
		}
		var dirFiles []string
		for _, entry := range entries {
			if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
				dirFiles = append(dirFiles, filepath.Join(arg, entry.Name()))
			}
		}
		sort.Strings(dirFiles)
		files = append(files, dirFiles...)
	}
	if len(files) == 0 {
		return nil, errors.New("no input files")
	}
	return files, nil
}

func writeRecords(w io.Writer, batch *types.BatchResult, stale, showRow bool,
	cache *refdata.TableCache, logger *zap.Logger) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)

	for _, result := range batch.Results {
		record := resultRecord{
			RunId:       batch.RunId,
			Document:    result.Name,
			Outcome:     result.Bucket.Outcome,
			Reason:      result.Bucket.Reason,
			Strategy:    result.Match.Strategy,
			Field1:      result.Query.Field1,
			Field2:      result.Query.Field2,
			Warnings:    result.Query.Warnings,
			RecallCount: result.Match.RecallCount,
			Candidates:  make([]candidateRecord, 0, len(result.Match.Candidates)),
			ConfigSHA:   batch.ConfigSHA,
			IndexDigest: batch.IndexDigest,
			Stale:       stale,
		}
		for _, c := range result.Match.Candidates {
			record.Candidates = append(record.Candidates, candidateRecord{
				Id:          c.Row.Id,
				Field1:      c.Row.Field1,
				Field2:      c.Row.Field2,
				Order:       c.Row.Order,
				Score:       c.Score,
				Field1Score: c.Field1Score,
				Field2Score: c.Field2Score,
			})
		}
		if showRow && len(result.Match.Candidates) > 0 {
			provenance := result.Match.Candidates[0].Row.Provenance
			row, err := refdata.ReadRow(cache, provenance.SourceFile, provenance.RowIndex)
			if err != nil {
				logger.Warn("source row unavailable", zap.String("document", result.Name), zap.Error(err))
			} else {
				record.SourceRow = row
			}
		}
		if err := encoder.Encode(record); err != nil {
			return errors.Wrap(err, "write result")
		}
	}

	for _, failure := range batch.Failures {
		err := encoder.Encode(failureRecord{RunId: batch.RunId, Document: failure.Name, Error: failure.Err.Error()})
		if err != nil {
			return errors.Wrap(err, "write failure")
		}
	}
	return nil
}

func printSummary(w io.Writer, batch *types.BatchResult) {
	color.New(color.FgGreen).Fprintf(w, "accept %d  ", batch.Counts[types.OutcomeAccept])
	color.New(color.FgYellow).Fprintf(w, "review %d  ", batch.Counts[types.OutcomeReview])
	color.New(color.FgRed).Fprintf(w, "reject %d  ", batch.Counts[types.OutcomeReject])
	if len(batch.Failures) > 0 {
		color.New(color.FgMagenta).Fprintf(w, "failed %d  ", len(batch.Failures))
	}
	color.New(color.Faint).Fprintf(w, "run %s\n", batch.RunId)
}
