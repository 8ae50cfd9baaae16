package utils

import (
	"path/filepath"
	"testing"

	"github.com/cznic/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestMinMaxInt(t *testing.T) {
	Expect(t, "1", MinInt(1, 2))
	Expect(t, "2", MaxInt(1, 2))
	Expect(t, "3", AbsInt(-3))
}

func TestOpenOrCreateKv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.kv")

	db, err := OpenOrCreateKv(path, &kv.Options{})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenOrCreateKv(path, &kv.Options{})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Set([]byte("key1"), []byte("value1")))

	value, err := db.Get(nil, []byte("key1"))
	require.NoError(t, err)
	assert.Equal(t, "value1", string(value))
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug", false)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = NewLogger("loud", false)
	assert.Error(t, err)
}
