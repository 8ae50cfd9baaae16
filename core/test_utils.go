package core

import (
	"fmt"

	"github.com/huichen/ocrmatch/types"
)

func newTestRows(fields ...string) []types.ReferenceRow {
	rows := make([]types.ReferenceRow, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		rows = append(rows, types.ReferenceRow{Field1: fields[i], Field2: fields[i+1]})
	}
	return rows
}

func candidatesToString(candidates []types.ScoredCandidate) (output string) {
	for _, c := range candidates {
		output += fmt.Sprintf("[%d %d %d %d] ",
			c.Row.Id, int(c.Score*1000), int(c.Field1Score*1000), int(c.Field2Score*1000))
	}
	return
}

func overlapsToString(overlaps []overlap) (output string) {
	for _, o := range overlaps {
		output += fmt.Sprintf("%d:%d ", o.docId, o.count)
	}
	return
}

func idsToString(candidates []types.ScoredCandidate) (output string) {
	for _, c := range candidates {
		output += fmt.Sprintf("%d ", c.Row.Id)
	}
	return
}
