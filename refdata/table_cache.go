package refdata

import (
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

const DefaultTableCacheSize = 16

// 按路径缓存解析后的参考表
//
// 文件变化后需要调用Invalidate或Purge，缓存不会自己检查文件。
type TableCache struct {
	tables *lru.Cache[string, *Table]
}

func NewTableCache(size int) (*TableCache, error) {
	if size <= 0 {
		size = DefaultTableCacheSize
	}
	tables, err := lru.New[string, *Table](size)
	if err != nil {
		return nil, errors.Wrap(err, "create table cache")
	}
	return &TableCache{tables: tables}, nil
}

// 读取并解析表，cache为nil时不缓存
func (cache *TableCache) Load(path string) (*Table, error) {
	if cache != nil {
		if table, found := cache.tables.Get(path); found {
			return table, nil
		}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read table %s", path)
	}
	table, err := ParseTable(path, content)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		cache.tables.Add(path, table)
	}
	return table, nil
}

func (cache *TableCache) Invalidate(path string) {
	if cache == nil {
		return
	}
	cache.tables.Remove(path)
}

func (cache *TableCache) Purge() {
	if cache == nil {
		return
	}
	cache.tables.Purge()
}

func (cache *TableCache) Len() int {
	if cache == nil {
		return 0
	}
	return cache.tables.Len()
}
