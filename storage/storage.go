package storage

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

const DefaultStorageEngine = "bolt"

var ErrUnsupportedEngine = errors.New("unsupported storage engine")

var (
	supportedStorageLock sync.RWMutex
	supportedStorage     = map[string]func(path string) (Storage, error){
		"kv":     openKVStorage,
		"bolt":   openBoltStorage,
		"sqlite": openSQLiteStorage,
	}
)

func RegisterStorageEngine(name string, fn func(path string) (Storage, error)) {
	supportedStorageLock.Lock()
	defer supportedStorageLock.Unlock()
	supportedStorage[name] = fn
}

// 已注册的存储引擎名，按字母排序
func SupportedEngines() []string {
	supportedStorageLock.RLock()
	defer supportedStorageLock.RUnlock()
	names := make([]string, 0, len(supportedStorage))
	for name := range supportedStorage {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// 键值存储。Get在键不存在时返回nil, nil；ForEach按键的字节序遍历，fn中不要写入同一个存储。
type Storage interface {
	Set(k, v []byte) error
	Get(k []byte) ([]byte, error)
	Delete(k []byte) error
	ForEach(fn func(k, v []byte) error) error
	Close() error
	WALName() string
}

// 打开存储，engine为空时使用DefaultStorageEngine
func OpenStorage(path, engine string) (Storage, error) {
	if engine == "" {
		engine = DefaultStorageEngine
	}
	supportedStorageLock.RLock()
	fn, has := supportedStorage[engine]
	supportedStorageLock.RUnlock()
	if !has {
		return nil, errors.Wrapf(ErrUnsupportedEngine, "%q", engine)
	}
	return fn(path)
}
