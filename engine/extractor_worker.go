package engine

import (
	"time"

	"github.com/huichen/murmur"
	"github.com/huichen/ocrmatch/types"
)

type extractorRequest struct {
	seq           int
	doc           types.Document
	start         time.Time
	returnChannel chan<- documentResponse
}

// 一份文档的最终结果
type documentResponse struct {
	seq    int
	result types.DocumentResult
	err    error
}

func (engine *Engine) extractorWorker() {
	defer engine.extractorGroup.Done()
	for request := range engine.extractorChannel {
		var query types.ExtractedQuery
		err := safely(func() {
			query = engine.extractor.Extract(request.doc.Text)
		})
		if err != nil {
			engine.recordFailure(request.doc.Name, err)
			request.returnChannel <- documentResponse{
				seq: request.seq, result: types.DocumentResult{Name: request.doc.Name}, err: err}
			continue
		}

		shard := engine.getShard(murmur.Murmur3([]byte(request.doc.Name)))
		engine.matcherChannels[shard] <- matcherRequest{
			seq:           request.seq,
			name:          request.doc.Name,
			query:         query,
			start:         request.start,
			returnChannel: request.returnChannel,
		}
	}
}
