package lidconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/lilyrrose/lid/pkg/lid"
)

// Format 配置文件格式。
type Format string

const (
	// FormatYAML YAML 格式。
	FormatYAML Format = "yaml"
	// FormatJSON JSON 格式。
	FormatJSON Format = "json"
)

// 配置键分隔符与结构体标签，沿用 koanf 惯例。
const (
	delim = "."
	tag   = "koanf"
)

// =============================================================================
// Config
// =============================================================================

// Config 是生成器的声明式配置。零值字段回落到 lid 包的默认值。
type Config struct {
	// Alphabet 预定义符号表名称：base32 / base36 / base62（大小写不敏感）。
	// 与 Symbols 互斥。
	Alphabet string `koanf:"alphabet"`

	// Symbols 自定义符号串，交由 lid.NewAlphabet 校验。与 Alphabet 互斥。
	Symbols string `koanf:"symbols"`

	// PrefixLength 前缀长度 P，0 表示默认值。
	PrefixLength int `koanf:"prefix_length"`

	// SequenceLength 序列长度 S，0 表示默认值。
	SequenceLength int `koanf:"sequence_length"`

	// MinIncrement / MaxIncrement 步长抽取区间 [min, max)。
	// 两者同时为 0 表示默认区间；只设置其一视为配置错误（在
	// lid.NewGenerator 的区间校验中暴露）。
	MinIncrement uint64 `koanf:"min_increment"`
	MaxIncrement uint64 `koanf:"max_increment"`

	// Validate 开启校验模式（lid.WithValidation）。
	Validate bool `koanf:"validate"`
}

// Options 将声明式配置解析为 lid 构造选项。
//
// Alphabet 与 Symbols 同时非空，或 Alphabet 不是已知名称时，
// 返回 [ErrInvalidConfig]。数值字段不在此处校验，统一交由
// lid.NewGenerator fail-fast。
func (c *Config) Options() ([]lid.Option, error) {
	var opts []lid.Option

	if c.Alphabet != "" && c.Symbols != "" {
		return nil, fmt.Errorf("%w: alphabet and symbols are mutually exclusive", ErrInvalidConfig)
	}

	switch {
	case c.Alphabet != "":
		a, err := namedAlphabet(c.Alphabet)
		if err != nil {
			return nil, err
		}
		opts = append(opts, lid.WithAlphabet(a))
	case c.Symbols != "":
		a, err := lid.NewAlphabet(c.Symbols)
		if err != nil {
			return nil, err
		}
		opts = append(opts, lid.WithAlphabet(a))
	}

	if c.PrefixLength != 0 {
		opts = append(opts, lid.WithPrefixLength(c.PrefixLength))
	}
	if c.SequenceLength != 0 {
		opts = append(opts, lid.WithSequenceLength(c.SequenceLength))
	}
	if c.MinIncrement != 0 || c.MaxIncrement != 0 {
		opts = append(opts, lid.WithIncrementRange(c.MinIncrement, c.MaxIncrement))
	}
	if c.Validate {
		opts = append(opts, lid.WithValidation())
	}
	return opts, nil
}

// namedAlphabet 解析预定义符号表名称。
func namedAlphabet(name string) (lid.Alphabet, error) {
	switch strings.ToLower(name) {
	case "base32":
		return lid.Base32, nil
	case "base36":
		return lid.Base36, nil
	case "base62":
		return lid.Base62, nil
	default:
		return lid.Alphabet{}, fmt.Errorf("%w: unknown alphabet %q (want base32/base36/base62)", ErrInvalidConfig, name)
	}
}

// =============================================================================
// File
// =============================================================================

// File 是一份已加载的配置文件。Reload 可在运行期重新读取，
// 读写经 RWMutex 保护，可与 Watcher 并发使用。
type File struct {
	mu      sync.RWMutex
	k       *koanf.Koanf
	path    string
	format  Format
	isBytes bool
}

// Load 从文件路径加载配置，格式由扩展名决定（.yaml/.yml/.json）。
func Load(path string) (*File, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	k := koanf.New(delim)
	if err := loadData(k, data, format); err != nil {
		return nil, err
	}
	return &File{k: k, path: path, format: format}, nil
}

// LoadBytes 从字节数据加载配置，需显式指定格式。
// 适用于 K8s ConfigMap 等没有落盘文件的场景；空数据得到空配置
// （Config 返回全零值，即 lid 默认配置）。
func LoadBytes(data []byte, format Format) (*File, error) {
	if !isValidFormat(format) {
		return nil, ErrUnsupportedFormat
	}

	k := koanf.New(delim)
	if len(data) > 0 {
		if err := loadData(k, data, format); err != nil {
			return nil, err
		}
	}
	return &File{k: k, format: format, isBytes: true}, nil
}

// Config 反序列化出当前的生成器配置。
func (f *File) Config() (*Config, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var cfg Config
	if err := f.k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: tag}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}
	return &cfg, nil
}

// Generator 按当前配置构造一个新的生成器。
func (f *File) Generator() (*lid.Generator, error) {
	cfg, err := f.Config()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return lid.NewGenerator(opts...)
}

// Reload 重新读取配置文件。从字节数据创建的配置不可重载。
func (f *File) Reload() error {
	if f.isBytes {
		return ErrNotWatchable
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	newK := koanf.New(delim)
	if err := loadData(newK, data, f.format); err != nil {
		return err
	}

	f.mu.Lock()
	f.k = newK
	f.mu.Unlock()
	return nil
}

// Path 返回配置文件路径，字节数据创建时为空。
func (f *File) Path() string {
	return f.path
}

// Format 返回配置格式。
func (f *File) Format() Format {
	return f.format
}

// =============================================================================
// 内部辅助函数
// =============================================================================

// detectFormat 根据文件扩展名检测配置格式。
func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %s", ErrUnsupportedFormat, ext)
	}
}

// isValidFormat 检查格式是否有效。
func isValidFormat(format Format) bool {
	switch format {
	case FormatYAML, FormatJSON:
		return true
	default:
		return false
	}
}

// loadData 加载数据到 koanf 实例。
func loadData(k *koanf.Koanf, data []byte, format Format) error {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return ErrUnsupportedFormat
	}

	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return nil
}
