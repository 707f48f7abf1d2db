package lid

import "errors"

var (
	// ErrInvalidAlphabet 表示符号表不合法（符号过少、重复或含不可打印字节）。
	ErrInvalidAlphabet = errors.New("lid: invalid alphabet")

	// ErrInvalidConfig 表示构造参数违反约束。
	// 仅在构造期出现，生成器一旦创建成功便不会再产生此错误。
	ErrInvalidConfig = errors.New("lid: invalid config")

	// ErrInvalidEncoding 表示校验模式下渲染出的字节不属于符号表。
	// 这只可能由符号表自身的配置缺陷引起，属于编程错误而非瞬态故障，
	// 不应重试（出错前内部状态已经推进）。
	ErrInvalidEncoding = errors.New("lid: invalid encoding")

	// ErrInvalidID 表示待解析的 ID 长度不符或含有表外字节。
	ErrInvalidID = errors.New("lid: invalid id")

	// ErrNilGenerator 表示生成器实例为 nil 或未通过 NewGenerator 创建。
	// 请始终通过 NewGenerator 创建生成器实例。
	ErrNilGenerator = errors.New("lid: nil generator (use NewGenerator to create)")

	// ErrAlreadyInitialized 表示全局生成器已初始化。
	// 第二次调用 Init 时返回此错误。如需多个生成器，请使用 NewGenerator。
	ErrAlreadyInitialized = errors.New("lid: generator already initialized")

	// ErrNotInitialized 表示全局生成器未初始化。
	// 当用户显式调用 Init 但失败后，后续包级函数返回此错误。
	// 此时自动初始化被禁用以尊重用户意图，请修复失败原因后重新调用 Init。
	ErrNotInitialized = errors.New("lid: generator not initialized (Init was called but failed; call Init again to retry)")
)
