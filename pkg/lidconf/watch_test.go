package lidconf

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_ReloadOnChange(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "lid.yaml", "prefix_length: 6\n")
	f, err := Load(path)
	require.NoError(t, err)

	reloaded := make(chan error, 8)
	w, err := Watch(f, func(_ *File, err error) {
		reloaded <- err
	}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	w.StartAsync()
	defer func() { require.NoError(t, w.Stop()) }()

	require.NoError(t, os.WriteFile(path, []byte("prefix_length: 9\n"), 0o600))

	select {
	case err := <-reloaded:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload callback")
	}

	cfg, err := f.Config()
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.PrefixLength)
}

func TestWatch_ReloadFailureReported(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "lid.yaml", "prefix_length: 6\n")
	f, err := Load(path)
	require.NoError(t, err)

	reloaded := make(chan error, 8)
	w, err := Watch(f, func(_ *File, err error) {
		reloaded <- err
	}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	w.StartAsync()
	defer func() { require.NoError(t, w.Stop()) }()

	require.NoError(t, os.WriteFile(path, []byte("prefix_length: [broken"), 0o600))

	select {
	case err := <-reloaded:
		require.ErrorIs(t, err, ErrParseFailed)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload callback")
	}

	// 重载失败时保留上一份有效配置
	cfg, err := f.Config()
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.PrefixLength)
}

func TestWatch_NotWatchable(t *testing.T) {
	t.Parallel()

	f, err := LoadBytes([]byte("{}"), FormatJSON)
	require.NoError(t, err)

	_, err = Watch(f, nil)
	require.ErrorIs(t, err, ErrNotWatchable)

	_, err = Watch(nil, nil)
	require.ErrorIs(t, err, ErrNotWatchable)
}

func TestWatch_StopIdempotent(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "lid.yaml", "prefix_length: 6\n")
	f, err := Load(path)
	require.NoError(t, err)

	w, err := Watch(f, nil)
	require.NoError(t, err)
	w.StartAsync()
	w.StartAsync() // 重复启动应为幂等

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
