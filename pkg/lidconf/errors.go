package lidconf

import "errors"

// 配置加载和解析相关错误。
var (
	// ErrEmptyPath 表示配置文件路径为空。
	ErrEmptyPath = errors.New("lidconf: empty config path")

	// ErrUnsupportedFormat 表示不支持的配置格式。
	ErrUnsupportedFormat = errors.New("lidconf: unsupported config format")

	// ErrLoadFailed 表示配置加载失败。
	ErrLoadFailed = errors.New("lidconf: failed to load config")

	// ErrParseFailed 表示配置解析失败。
	ErrParseFailed = errors.New("lidconf: failed to parse config")

	// ErrUnmarshalFailed 表示配置反序列化失败。
	ErrUnmarshalFailed = errors.New("lidconf: failed to unmarshal config")

	// ErrInvalidConfig 表示配置字段取值非法（如同时指定 alphabet 与 symbols）。
	ErrInvalidConfig = errors.New("lidconf: invalid config")

	// ErrNotWatchable 表示配置不是从文件创建的，无法监视。
	ErrNotWatchable = errors.New("lidconf: config created from bytes cannot be watched")
)
