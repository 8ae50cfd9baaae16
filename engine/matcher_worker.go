package engine

import (
	"time"

	"github.com/huichen/ocrmatch/types"
)

type matcherRequest struct {
	seq           int
	name          string
	query         types.ExtractedQuery
	start         time.Time
	returnChannel chan<- documentResponse
}

func (engine *Engine) matcherWorker(shard int) {
	defer engine.matcherGroup.Done()
	for request := range engine.matcherChannels[shard] {
		var match types.MatchResult
		err := safely(func() {
			match = engine.matcher.Match(request.query.Field1, request.query.Field2)
		})
		if err != nil {
			engine.recordFailure(request.name, err)
			request.returnChannel <- documentResponse{
				seq: request.seq, result: types.DocumentResult{Name: request.name}, err: err}
			continue
		}

		engine.bucketizerChannel <- bucketizerRequest{
			seq:           request.seq,
			name:          request.name,
			query:         request.query,
			match:         match,
			start:         request.start,
			returnChannel: request.returnChannel,
		}
	}
}
