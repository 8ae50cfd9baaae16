package engine

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/huichen/ocrmatch/storage"
	"github.com/huichen/ocrmatch/types"
	"github.com/pkg/errors"
)

var ErrCorruptIndex = errors.New("corrupt index artifact")

const (
	metaKey           = "meta"
	rowsKeyPrefix     = "rows:"
	postingsKeyPrefix = "postings:"

	// 每个键保存的行数和关键词数
	rowsPerChunk   = 1024
	tokensPerChunk = 4096
)

// 索引元数据，最后写入
type persistentIndexHeader struct {
	Digest            string
	Meta              types.IndexMeta
	NumRowChunks      int
	NumPostingsChunks int
}

func chunkKey(prefix string, i int) []byte {
	return []byte(fmt.Sprintf("%s%08d", prefix, i))
}

func gobEncode(value interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gobDecode(data []byte, value interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(value)
}

// 把索引写入存储。存储中原有的键会先被删除，元数据最后写入，写到一半失败的存储无法被LoadIndex读出。
func SaveIndex(store storage.Storage, index *types.InvertedIndex) error {
	var oldKeys [][]byte
	err := store.ForEach(func(k, v []byte) error {
		oldKeys = append(oldKeys, append([]byte(nil), k...))
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "scan storage")
	}
	for _, k := range oldKeys {
		if err := store.Delete(k); err != nil {
			return errors.Wrap(err, "clear storage")
		}
	}

	header := persistentIndexHeader{Digest: index.Digest, Meta: index.Meta}

	for start := 0; start < len(index.Rows); start += rowsPerChunk {
		end := start + rowsPerChunk
		if end > len(index.Rows) {
			end = len(index.Rows)
		}
		value, err := gobEncode(index.Rows[start:end])
		if err != nil {
			return errors.Wrap(err, "encode rows")
		}
		if err := store.Set(chunkKey(rowsKeyPrefix, header.NumRowChunks), value); err != nil {
			return errors.Wrap(err, "write rows")
		}
		header.NumRowChunks++
	}

	tokens := make([]string, 0, len(index.Postings))
	for token := range index.Postings {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	for start := 0; start < len(tokens); start += tokensPerChunk {
		end := start + tokensPerChunk
		if end > len(tokens) {
			end = len(tokens)
		}
		chunk := make(map[string][]uint64, end-start)
		for _, token := range tokens[start:end] {
			chunk[token] = index.Postings[token]
		}
		value, err := gobEncode(chunk)
		if err != nil {
			return errors.Wrap(err, "encode postings")
		}
		if err := store.Set(chunkKey(postingsKeyPrefix, header.NumPostingsChunks), value); err != nil {
			return errors.Wrap(err, "write postings")
		}
		header.NumPostingsChunks++
	}

	value, err := gobEncode(header)
	if err != nil {
		return errors.Wrap(err, "encode index header")
	}
	return errors.Wrap(store.Set([]byte(metaKey), value), "write index header")
}

// 从存储中读出索引，并按元数据检查完整性
func LoadIndex(store storage.Storage) (*types.InvertedIndex, error) {
	var header *persistentIndexHeader
	index := &types.InvertedIndex{Postings: make(map[string][]uint64)}
	numRowChunks, numPostingsChunks := 0, 0

	err := store.ForEach(func(k, v []byte) error {
		key := string(k)
		switch {
		case key == metaKey:
			header = new(persistentIndexHeader)
			return errors.Wrap(gobDecode(v, header), "decode index header")
		case strings.HasPrefix(key, rowsKeyPrefix):
			var rows []types.ReferenceRow
			if err := gobDecode(v, &rows); err != nil {
				return errors.Wrapf(err, "decode %s", key)
			}
			index.Rows = append(index.Rows, rows...)
			numRowChunks++
		case strings.HasPrefix(key, postingsKeyPrefix):
			var chunk map[string][]uint64
			if err := gobDecode(v, &chunk); err != nil {
				return errors.Wrapf(err, "decode %s", key)
			}
			for token, ids := range chunk {
				index.Postings[token] = ids
			}
			numPostingsChunks++
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(ErrCorruptIndex, err.Error())
	}
	if header == nil {
		return nil, errors.Wrap(ErrCorruptIndex, "missing index header")
	}
	if numRowChunks != header.NumRowChunks || numPostingsChunks != header.NumPostingsChunks ||
		len(index.Rows) != header.Meta.TotalRows || len(index.Postings) != header.Meta.UniqueTokens {
		return nil, errors.Wrapf(ErrCorruptIndex, "expected %d rows and %d tokens, found %d and %d",
			header.Meta.TotalRows, header.Meta.UniqueTokens, len(index.Rows), len(index.Postings))
	}

	sort.Slice(index.Rows, func(i, j int) bool {
		return index.Rows[i].Id < index.Rows[j].Id
	})
	index.Digest = header.Digest
	index.Meta = header.Meta
	return index, nil
}

// 打开path处的存储并写入索引
func WriteIndexFile(path, engine string, index *types.InvertedIndex) error {
	store, err := storage.OpenStorage(path, engine)
	if err != nil {
		return err
	}
	if err := SaveIndex(store, index); err != nil {
		store.Close()
		return err
	}
	return store.Close()
}

// 打开path处的存储并读出索引
func ReadIndexFile(path, engine string) (*types.InvertedIndex, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "index file %s", path)
	}
	store, err := storage.OpenStorage(path, engine)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return LoadIndex(store)
}
