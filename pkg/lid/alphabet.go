package lid

import "fmt"

// =============================================================================
// 符号表
// =============================================================================

// Alphabet 定义编码所用的数字系统：一组有序且互不重复的符号，
// BASE 等于符号数量。符号到数值的双向映射在构造时固定，之后只读。
//
// Alphabet 是值类型，可以安全地在多个 Generator 之间共享。
type Alphabet struct {
	symbols string
	// index 是符号字节到数值的反向查找表，-1 表示不属于本表。
	// 用数组而非 map，保证热路径查找零分配。
	index [256]int16
}

// 预定义符号表。选择在构造 Generator 时一次性完成，不支持按调用切换。
var (
	// Base32 是 32 符号的安全子集（Crockford 风格，剔除 I/L/O/U 等易混淆字符）。
	Base32 = mustAlphabet("0123456789ABCDEFGHJKMNPQRSTVWXYZ")

	// Base36 是大写字母加数字的 36 符号表，也是默认符号表。
	// 符号顺序沿用 lid 的历史定义（字母在前、数字以 1 开头），
	// 改动顺序会改变已有 ID 的解码结果。
	Base36 = mustAlphabet("ABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890")

	// Base62 是大小写字母加数字的 62 符号表，地址空间最大。
	Base62 = mustAlphabet("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")
)

// NewAlphabet 从调用方提供的符号串构造符号表。
//
// 校验规则（违反即返回 [ErrInvalidAlphabet]，fail-fast）：
//   - 至少 2 个符号（进制至少为 2）
//   - 所有符号互不重复
//   - 所有符号为单字节可打印 ASCII（0x21-0x7e），保证编码结果
//     无需二次校验即是合法文本
func NewAlphabet(symbols string) (Alphabet, error) {
	if len(symbols) < 2 {
		return Alphabet{}, fmt.Errorf("%w: need at least 2 symbols, got %d", ErrInvalidAlphabet, len(symbols))
	}
	if len(symbols) > 256 {
		return Alphabet{}, fmt.Errorf("%w: at most 256 symbols, got %d", ErrInvalidAlphabet, len(symbols))
	}

	a := Alphabet{symbols: symbols}
	for i := range a.index {
		a.index[i] = -1
	}
	for i := 0; i < len(symbols); i++ {
		c := symbols[i]
		if c <= 0x20 || c >= 0x7f {
			return Alphabet{}, fmt.Errorf("%w: symbol %d (0x%02x) is not printable ASCII", ErrInvalidAlphabet, i, c)
		}
		if a.index[c] >= 0 {
			return Alphabet{}, fmt.Errorf("%w: duplicate symbol %q", ErrInvalidAlphabet, c)
		}
		a.index[c] = int16(i)
	}
	return a, nil
}

// mustAlphabet 构造预定义符号表，符号串非法时 panic。
// 仅用于包内常量表，调用方自定义符号表请使用 NewAlphabet。
func mustAlphabet(symbols string) Alphabet {
	a, err := NewAlphabet(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

// Base 返回进制（符号数量）。
func (a Alphabet) Base() int {
	return len(a.symbols)
}

// Symbols 返回符号串，顺序即数值 0..Base-1 的映射。
func (a Alphabet) Symbols() string {
	return a.symbols
}

// Contains 报告字节 c 是否属于本符号表。
func (a Alphabet) Contains(c byte) bool {
	return a.index[c] >= 0
}

// valid 报告符号表是否经由 NewAlphabet 构造（零值 Alphabet 不可用）。
func (a Alphabet) valid() bool {
	return len(a.symbols) >= 2
}

// digit 返回字节 c 在本表中的数值，不存在时返回 -1。
func (a Alphabet) digit(c byte) int {
	return int(a.index[c])
}

// validateBytes 校验 buf 的每个字节都属于本符号表。
// 仅在校验模式（WithValidation）下被 Generate 调用。
func (a Alphabet) validateBytes(buf []byte) error {
	for i, c := range buf {
		if a.index[c] < 0 {
			return fmt.Errorf("byte %d (0x%02x) at position %d not in alphabet", c, c, i)
		}
	}
	return nil
}
