package lid

import (
	"fmt"
	"math"
)

// =============================================================================
// 编码 / 解码
// =============================================================================

// encodeSequence 将当前序列值渲染为定宽 base-BASE 数字，高位在前，
// 以零值符号左填充，写入 buf 的序列区。序列值恒小于 BASE^S
// （advance 的模运算保证），因此定宽 S 一定装得下，无失败路径。
func (g *Generator) encodeSequence() {
	out := g.buf[g.prefixLen:]
	seq := g.sequence
	base := uint64(g.alphabet.Base())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = g.alphabet.symbols[seq%base]
		seq /= base
	}
}

// DecodeSequence 将定宽 base-BASE 数字串解码回无符号整数。
//
// s 的每个字节都必须属于 alphabet，否则返回 [ErrInvalidID]；
// 数值超出 uint64 同样报错。与 Generator 渲染的序列区互为逆运算，
// 前导零值符号不影响结果。
func DecodeSequence(s string, alphabet Alphabet) (uint64, error) {
	if !alphabet.valid() {
		return 0, fmt.Errorf("%w: alphabet is not constructed (use NewAlphabet)", ErrInvalidAlphabet)
	}
	if s == "" {
		return 0, fmt.Errorf("%w: empty sequence", ErrInvalidID)
	}

	base := uint64(alphabet.Base())
	var v uint64
	for i := 0; i < len(s); i++ {
		d := alphabet.digit(s[i])
		if d < 0 {
			return 0, fmt.Errorf("%w: byte %q at position %d not in alphabet", ErrInvalidID, s[i], i)
		}
		if v > (math.MaxUint64-uint64(d))/base {
			return 0, fmt.Errorf("%w: value overflows uint64", ErrInvalidID)
		}
		v = v*base + uint64(d)
	}
	return v, nil
}

// Components 表示标识符分解后的两个组成部分。
type Components struct {
	// Prefix 前 P 个符号，一个纪元内保持不变。
	Prefix string
	// Sequence 后 S 个符号解码出的计数器值。
	Sequence uint64
}

// Decompose 按本生成器的形态（P、S、符号表）分解一个标识符。
//
// 长度不等于 P+S 或含有表外字节时返回 [ErrInvalidID]。
// Decompose 只做形态校验，不证明 id 出自本实例：任何形态相同的
// 生成器产出的 ID 都能被分解。
func (g *Generator) Decompose(id string) (Components, error) {
	if err := g.validateInstance(); err != nil {
		return Components{}, err
	}
	if len(id) != g.prefixLen+g.seqLen {
		return Components{}, fmt.Errorf("%w: length %d, want %d", ErrInvalidID, len(id), g.prefixLen+g.seqLen)
	}

	prefix := id[:g.prefixLen]
	for i := 0; i < len(prefix); i++ {
		if !g.alphabet.Contains(prefix[i]) {
			return Components{}, fmt.Errorf("%w: byte %q at position %d not in alphabet", ErrInvalidID, prefix[i], i)
		}
	}

	seq, err := DecodeSequence(id[g.prefixLen:], g.alphabet)
	if err != nil {
		return Components{}, err
	}
	return Components{Prefix: prefix, Sequence: seq}, nil
}
