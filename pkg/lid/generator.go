package lid

import (
	crand "crypto/rand"
	"fmt"
	"math"
	mrand "math/rand/v2"
)

// 测试注入点：允许测试替换熵源以覆盖确定性场景。
//
// 两个熵源的差异是刻意设计：前缀必须抵抗外部观察者的预测与枚举，
// 使用 crypto/rand；sequence/increment 的初始抽取只影响内部节奏，
// 使用更廉价的 math/rand/v2 即可。
var (
	cryptoRead  = crand.Read
	randUint64N = mrand.Uint64N
)

// =============================================================================
// Generator
// =============================================================================

// Generator 紧凑唯一标识生成器。
//
// 每个实例持有一个随机前缀、一个随机步长推进的序列计数器和一个
// 可复用的输出缓冲区。Generate 推进计数器并渲染 前缀‖序列，
// 序列回绕到 0 时轮换前缀。
//
// Generator 不是并发安全的：Generate 同时读写 sequence、prefix 和
// 输出缓冲区，多 goroutine 并发调用同一实例会破坏状态或产出重复 ID。
// 两种受支持的并发模型：
//   - 每个 worker 持有私有实例（吞吐优先）：前缀独立随机，
//     跨实例碰撞概率约为 BASE^-P，无需任何协调
//   - 共享默认实例（简单优先）：包级 Generate 由互斥锁完全串行化
type Generator struct {
	alphabet  Alphabet
	prefixLen int
	seqLen    int
	// maxSequence = BASE^S，sequence 的模。
	// 构造期保证 maxSequence + increment 不会溢出 uint64。
	maxSequence uint64
	validate    bool
	observer    Observer

	prefix    []byte
	sequence  uint64
	increment uint64
	// buf 长度固定为 P+S。buf[:P] 始终是 prefix 的副本，
	// 仅在轮换时重写；buf[P:] 每次 Generate 重新渲染。
	buf []byte
}

// NewGenerator 创建新的生成器实例。
//
// 全部配置在构造时固定，不支持按调用传参。校验失败返回
// [ErrInvalidConfig]（符号表非法时为 [ErrInvalidAlphabet]）：
//   - P ≤ 0 或 S ≤ 0
//   - minIncrement = 0 或 minIncrement ≥ maxIncrement
//   - BASE^S 超出 uint64 表示范围
//   - BASE^S + maxIncrement 溢出（保证推进运算无需宽整数）
//   - [minIncrement, maxIncrement) 内全部是 BASE^S 的倍数
//     （模 BASE^S 后有效步长为 0，序列永不推进，等同零步长）
//
// 初始 sequence 在 [0, BASE^S) 均匀抽取，因此首次前缀轮换发生在
// 不确定的调用次数之后，避免大量实例在同一时刻集中轮换；
// increment 在 [minIncrement, maxIncrement) 抽取一次，终生不变，
// 且保证 increment 不是 BASE^S 的倍数（落在倍数上重抽）。
func NewGenerator(opts ...Option) (*Generator, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	if !cfg.alphabet.valid() {
		return nil, fmt.Errorf("%w: alphabet is not constructed (use NewAlphabet)", ErrInvalidAlphabet)
	}
	if cfg.prefixLen <= 0 {
		return nil, fmt.Errorf("%w: prefix length must be positive, got %d", ErrInvalidConfig, cfg.prefixLen)
	}
	if cfg.seqLen <= 0 {
		return nil, fmt.Errorf("%w: sequence length must be positive, got %d", ErrInvalidConfig, cfg.seqLen)
	}
	if cfg.minIncrement == 0 {
		return nil, fmt.Errorf("%w: min increment must be at least 1 (zero step never wraps)", ErrInvalidConfig)
	}
	if cfg.minIncrement >= cfg.maxIncrement {
		return nil, fmt.Errorf("%w: min increment %d must be less than max increment %d",
			ErrInvalidConfig, cfg.minIncrement, cfg.maxIncrement)
	}

	maxSequence, err := pow(uint64(cfg.alphabet.Base()), cfg.seqLen)
	if err != nil {
		return nil, err
	}
	if cfg.maxIncrement > math.MaxUint64-maxSequence {
		return nil, fmt.Errorf("%w: base^%d plus max increment overflows uint64", ErrInvalidConfig, cfg.seqLen)
	}
	// 步长在推进时取模 BASE^S，是其倍数时有效步长为 0：序列永不
	// 变化、永不回绕，每次 Generate 产出同一个 ID。连续整数区间宽度
	// ≥ 2 时必含非倍数（BASE^S ≥ 2，相邻整数不可能同为倍数），
	// 唯一无解的区间是落在倍数上的单宽区间，在此直接拒绝。
	if cfg.maxIncrement-cfg.minIncrement == 1 && cfg.minIncrement%maxSequence == 0 {
		return nil, fmt.Errorf("%w: increment range [%d, %d) only contains multiples of base^%d (effective step is zero)",
			ErrInvalidConfig, cfg.minIncrement, cfg.maxIncrement, cfg.seqLen)
	}

	g := &Generator{
		alphabet:    cfg.alphabet,
		prefixLen:   cfg.prefixLen,
		seqLen:      cfg.seqLen,
		maxSequence: maxSequence,
		validate:    cfg.validate,
		observer:    cfg.observer,
		prefix:      make([]byte, cfg.prefixLen),
		buf:         make([]byte, cfg.prefixLen+cfg.seqLen),
	}

	g.sequence = randUint64N(maxSequence)
	g.increment = cfg.minIncrement + randUint64N(cfg.maxIncrement-cfg.minIncrement)
	// 抽中 BASE^S 的倍数时重抽。区间校验保证非倍数存在，
	// 每轮命中非倍数的概率有正的下界，循环必然终止。
	for g.increment%maxSequence == 0 {
		g.increment = cfg.minIncrement + randUint64N(cfg.maxIncrement-cfg.minIncrement)
	}
	if cfg.initialSequence != nil {
		g.sequence = *cfg.initialSequence % maxSequence
	}
	if cfg.initialIncrement != nil {
		g.increment = *cfg.initialIncrement
	}

	g.rotatePrefix()
	return g, nil
}

// pow 计算 base^exp，溢出 uint64 时返回 ErrInvalidConfig。
func pow(base uint64, exp int) (uint64, error) {
	result := uint64(1)
	for i := 0; i < exp; i++ {
		if result > math.MaxUint64/base {
			return 0, fmt.Errorf("%w: base^%d overflows uint64 (base %d)", ErrInvalidConfig, exp, base)
		}
		result *= base
	}
	return result, nil
}

// validateInstance 校验生成器实例是否可用。
// 防止零值 Generator 或 nil *Generator 导致 nil pointer panic。
func (g *Generator) validateInstance() error {
	if g == nil || len(g.buf) == 0 {
		return ErrNilGenerator
	}
	return nil
}

// =============================================================================
// 生成
// =============================================================================

// Generate 生成下一个标识符。
//
// 每次调用不可逆地推进内部状态（非幂等）：序列加 increment 取模
// BASE^S；恰好回绕到 0 时轮换前缀，旧纪元与新纪元之间不保证任何
// 顺序关系。同一纪元内的输出按字典序严格递增。
//
// 返回值长度恒为 P+S，字符全部出自配置的符号表，是缓冲区的副本，
// 调用方可自由持有。默认模式下除实例误用（[ErrNilGenerator]）外
// 不会失败；校验模式见 [WithValidation]。
func (g *Generator) Generate() (string, error) {
	if err := g.validateInstance(); err != nil {
		return "", err
	}

	rotated := g.advance()
	g.encodeSequence()

	if g.validate {
		if err := g.alphabet.validateBytes(g.buf); err != nil {
			// 状态已推进，重试不会改变任何结果
			return "", fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
		}
	}
	if g.observer != nil {
		g.observer.ObserveGenerate(rotated)
	}
	return string(g.buf), nil
}

// MustGenerate 生成下一个标识符，失败时 panic。
//
// 默认模式下 Generate 对合法实例不会失败，MustGenerate 是图省事的
// 等价写法；校验模式下仅适用于明确接受 crash-fast 策略的场景。
func (g *Generator) MustGenerate() string {
	id, err := g.Generate()
	if err != nil {
		panic(err)
	}
	return id
}

// advance 将序列推进 increment（模 BASE^S），返回是否发生回绕。
// 回绕判定是"结果恰好为 0"：一个纪元共 BASE^S/gcd(increment, BASE^S)
// 步，期间序列值不会重复，回绕时前缀先于任何可能的重复被替换，
// 因此单实例终生不产出重复 ID。
func (g *Generator) advance() (rotated bool) {
	g.sequence = (g.sequence + g.increment) % g.maxSequence
	if g.sequence == 0 {
		g.rotatePrefix()
		return true
	}
	return false
}

// rotatePrefix 用 crypto/rand 重新抽取整个前缀并同步进 buf。
//
// 拒绝采样消除模偏差：丢弃 ≥ 256-256%BASE 的随机字节，
// 保证每个符号被抽中的概率严格相等。crypto/rand 自 Go 1.24 起
// 保证填满且不返回错误，失败路径不存在。
func (g *Generator) rotatePrefix() {
	base := g.alphabet.Base()
	limit := 256 - 256%base

	var raw [64]byte
	filled := 0
	for filled < len(g.prefix) {
		_, _ = cryptoRead(raw[:])
		for _, b := range raw {
			if int(b) >= limit {
				continue
			}
			g.prefix[filled] = g.alphabet.symbols[int(b)%base]
			filled++
			if filled == len(g.prefix) {
				break
			}
		}
	}
	copy(g.buf[:g.prefixLen], g.prefix)
}

// =============================================================================
// 只读访问
// =============================================================================

// Len 返回标识符总长度 P+S。
func (g *Generator) Len() int {
	return g.prefixLen + g.seqLen
}

// PrefixLength 返回前缀长度 P。
func (g *Generator) PrefixLength() int {
	return g.prefixLen
}

// SequenceLength 返回序列长度 S。
func (g *Generator) SequenceLength() int {
	return g.seqLen
}

// Base 返回进制（符号表大小）。
func (g *Generator) Base() int {
	return g.alphabet.Base()
}

// Alphabet 返回配置的符号表。
func (g *Generator) Alphabet() Alphabet {
	return g.alphabet
}

// Increment 返回构造时抽取的固定步长。
//
// 步长终生不变，单个纪元的调用容量为 BASE^S/gcd(increment, BASE^S)，
// 可据此做容量预估。
func (g *Generator) Increment() uint64 {
	return g.increment
}

// Prefix 返回当前前缀的副本。主要用于观察轮换行为。
func (g *Generator) Prefix() string {
	return string(g.prefix)
}
