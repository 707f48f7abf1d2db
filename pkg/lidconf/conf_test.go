package lidconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lilyrrose/lid/pkg/lid"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_YAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "lid.yaml", `
alphabet: base62
prefix_length: 12
sequence_length: 8
min_increment: 50
max_increment: 500
validate: true
`)

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f.Format())
	assert.Equal(t, path, f.Path())

	cfg, err := f.Config()
	require.NoError(t, err)
	assert.Equal(t, "base62", cfg.Alphabet)
	assert.Equal(t, 12, cfg.PrefixLength)
	assert.Equal(t, 8, cfg.SequenceLength)
	assert.Equal(t, uint64(50), cfg.MinIncrement)
	assert.Equal(t, uint64(500), cfg.MaxIncrement)
	assert.True(t, cfg.Validate)
}

func TestLoad_JSON(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "lid.json", `{"alphabet":"base32","prefix_length":10,"sequence_length":6}`)

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f.Format())

	cfg, err := f.Config()
	require.NoError(t, err)
	assert.Equal(t, "base32", cfg.Alphabet)
	assert.Equal(t, 10, cfg.PrefixLength)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("empty_path", func(t *testing.T) {
		t.Parallel()
		_, err := Load("")
		require.ErrorIs(t, err, ErrEmptyPath)
	})

	t.Run("unknown_extension", func(t *testing.T) {
		t.Parallel()
		_, err := Load("config.toml")
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("missing_file", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, ErrLoadFailed)
	})

	t.Run("malformed_yaml", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "bad.yaml", "alphabet: [unclosed")
		_, err := Load(path)
		require.ErrorIs(t, err, ErrParseFailed)
	})
}

func TestLoadBytes(t *testing.T) {
	t.Parallel()

	f, err := LoadBytes([]byte(`{"prefix_length":4,"sequence_length":3}`), FormatJSON)
	require.NoError(t, err)

	cfg, err := f.Config()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.PrefixLength)

	t.Run("empty_data_is_defaults", func(t *testing.T) {
		t.Parallel()
		f, err := LoadBytes(nil, FormatYAML)
		require.NoError(t, err)
		cfg, err := f.Config()
		require.NoError(t, err)
		assert.Equal(t, &Config{}, cfg)
	})

	t.Run("bad_format", func(t *testing.T) {
		t.Parallel()
		_, err := LoadBytes([]byte("{}"), Format("toml"))
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("not_reloadable", func(t *testing.T) {
		t.Parallel()
		f, err := LoadBytes([]byte("{}"), FormatJSON)
		require.NoError(t, err)
		require.ErrorIs(t, f.Reload(), ErrNotWatchable)
	})
}

func TestConfig_Options(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
		wantLen int
	}{
		{"empty_is_defaults", Config{}, nil, 0},
		{"named_alphabet", Config{Alphabet: "base32"}, nil, 1},
		{"named_case_insensitive", Config{Alphabet: "Base62"}, nil, 1},
		{"custom_symbols", Config{Symbols: "0123456789abcdef"}, nil, 1},
		{"full", Config{Alphabet: "base36", PrefixLength: 8, SequenceLength: 4, MinIncrement: 1, MaxIncrement: 9, Validate: true}, nil, 5},
		{"both_alphabet_and_symbols", Config{Alphabet: "base36", Symbols: "01"}, ErrInvalidConfig, 0},
		{"unknown_alphabet", Config{Alphabet: "base64"}, ErrInvalidConfig, 0},
		{"bad_symbols", Config{Symbols: "AA"}, lid.ErrInvalidAlphabet, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts, err := tt.cfg.Options()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, opts, tt.wantLen)
		})
	}
}

func TestFile_Generator(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "lid.yaml", "prefix_length: 6\nsequence_length: 4\n")
	f, err := Load(path)
	require.NoError(t, err)

	g, err := f.Generator()
	require.NoError(t, err)
	assert.Equal(t, 10, g.Len())

	id, err := g.Generate()
	require.NoError(t, err)
	assert.Len(t, id, 10)
}

func TestFile_Generator_InvalidShape(t *testing.T) {
	t.Parallel()

	// 数值约束交由 lid.NewGenerator 校验
	path := writeFile(t, "lid.yaml", "min_increment: 9\nmax_increment: 3\n")
	f, err := Load(path)
	require.NoError(t, err)

	_, err = f.Generator()
	require.ErrorIs(t, err, lid.ErrInvalidConfig)
}

func TestFile_Reload(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "lid.yaml", "prefix_length: 6\n")
	f, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("prefix_length: 9\n"), 0o600))
	require.NoError(t, f.Reload())

	cfg, err := f.Config()
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.PrefixLength)
}
