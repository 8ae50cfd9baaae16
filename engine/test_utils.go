package engine

import (
	"github.com/huichen/ocrmatch/core"
	"github.com/huichen/ocrmatch/types"
)

const testDigest = "0123456789abcdef"

func newTestIndex(fields ...string) *types.InvertedIndex {
	rows := make([]types.ReferenceRow, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		rows = append(rows, types.ReferenceRow{Field1: fields[i], Field2: fields[i+1]})
	}
	normalizer, _ := core.NewNormalizer(types.DefaultNormalizeConfig())
	index := core.BuildIndex(rows, normalizer, core.DefaultNgramSize)
	index.Digest = testDigest
	return index
}

func newTestOptions() types.EngineInitOptions {
	return types.EngineInitOptions{
		Normalize:    types.DefaultNormalizeConfig(),
		SourceDigest: testDigest,
	}
}

func resultsToString(batch *types.BatchResult) (output string) {
	for _, result := range batch.Results {
		output += result.Name + ":" + string(result.Bucket.Outcome)
		if result.Bucket.Reason != types.ReasonNone {
			output += "/" + string(result.Bucket.Reason)
		}
		output += " "
	}
	return
}
