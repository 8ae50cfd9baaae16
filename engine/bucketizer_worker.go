package engine

import (
	"time"

	"github.com/huichen/ocrmatch/core"
	"github.com/huichen/ocrmatch/types"
)

type bucketizerRequest struct {
	seq           int
	name          string
	query         types.ExtractedQuery
	match         types.MatchResult
	start         time.Time
	returnChannel chan<- documentResponse
}

func (engine *Engine) bucketizerWorker() {
	defer engine.bucketizerGroup.Done()
	for request := range engine.bucketizerChannel {
		result := types.DocumentResult{
			Name:  request.name,
			Query: request.query,
			Match: request.match,
		}
		err := safely(func() {
			result.Bucket = core.Bucketize(request.query.Field1, request.query.Field2,
				request.match.Candidates, engine.initOptions.Thresholds)
		})
		if err != nil {
			engine.recordFailure(request.name, err)
			request.returnChannel <- documentResponse{
				seq: request.seq, result: types.DocumentResult{Name: request.name}, err: err}
			continue
		}

		engine.recordResult(result, request.start)
		request.returnChannel <- documentResponse{seq: request.seq, result: result}
	}
}
