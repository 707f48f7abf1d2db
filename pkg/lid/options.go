package lid

// =============================================================================
// 配置
// =============================================================================

// 默认配置，沿用 lid 的历史常量。
// 默认形态下 ID 总长 28 字符，地址空间 36^16 × 36^12。
const (
	// DefaultPrefixLength 默认前缀长度（符号数）。
	DefaultPrefixLength = 16

	// DefaultSequenceLength 默认序列长度（符号数）。
	DefaultSequenceLength = 12

	// DefaultMinIncrement 默认步长下界（含）。
	DefaultMinIncrement = 100

	// DefaultMaxIncrement 默认步长上界（不含）。
	DefaultMaxIncrement = 1000
)

// options 内部配置结构
type options struct {
	alphabet     Alphabet
	prefixLen    int
	seqLen       int
	minIncrement uint64
	maxIncrement uint64
	validate     bool
	observer     Observer

	// 测试注入点：固定初始 sequence/increment，绕过随机抽取。
	// 仅 export_test.go 暴露，见 generator_test.go 的确定性场景。
	initialSequence  *uint64
	initialIncrement *uint64
}

// Option 配置选项函数
type Option func(*options)

func defaultOptions() *options {
	return &options{
		alphabet:     Base36,
		prefixLen:    DefaultPrefixLength,
		seqLen:       DefaultSequenceLength,
		minIncrement: DefaultMinIncrement,
		maxIncrement: DefaultMaxIncrement,
	}
}

// WithAlphabet 设置符号表。
//
// 默认为 [Base36]。符号表决定进制 BASE，也决定输出字符集。
// 传入零值 Alphabet（未经 NewAlphabet 构造）会在 NewGenerator 中返回错误。
func WithAlphabet(a Alphabet) Option {
	return func(o *options) {
		o.alphabet = a
	}
}

// WithPrefixLength 设置前缀长度 P（符号数）。
//
// 默认为 16。前缀越长，独立生成器之间撞前缀的概率越低（约 BASE^-P）。
// P ≤ 0 会在 NewGenerator 中返回错误。
func WithPrefixLength(p int) Option {
	return func(o *options) {
		o.prefixLen = p
	}
}

// WithSequenceLength 设置序列长度 S（符号数）。
//
// 默认为 12。序列越长，单个前缀纪元能产出的 ID 越多。
// S ≤ 0 或 BASE^S 超出 uint64 表示范围会在 NewGenerator 中返回错误。
func WithSequenceLength(s int) Option {
	return func(o *options) {
		o.seqLen = s
	}
}

// WithIncrementRange 设置随机步长的抽取区间 [minInc, maxInc)。
//
// 默认为 [100, 1000)。步长在构造时抽取一次，整个生命周期固定不变
// （包括跨前缀轮换），由此每个纪元的容量是可预估的。
// 约束：minInc ≥ 1 且 minInc < maxInc，否则 NewGenerator 返回错误。
// minInc = 0 意味着可能抽到零步长（序列永不推进），属于退化配置，
// 在构造期直接拒绝。BASE^S 的倍数同样等价于零步长（推进时取模），
// 抽取保证避开；区间内只有此类值时 NewGenerator 返回错误。
func WithIncrementRange(minInc, maxInc uint64) Option {
	return func(o *options) {
		o.minIncrement = minInc
		o.maxIncrement = maxInc
	}
}

// WithValidation 启用校验模式。
//
// 校验模式下 Generate 会在返回前确认缓冲区的每个字节都属于符号表，
// 不满足时返回 [ErrInvalidEncoding]。符号表在构造时已经校验过
// 字节安全性，因此默认模式省略这一步，Generate 不会失败。
// 需要显式失败可见性的调用方可以选择开启。
func WithValidation() Option {
	return func(o *options) {
		o.validate = true
	}
}

// WithObserver 设置观测回调。
//
// 每次 Generate 成功推进状态后调用 o.ObserveGenerate(rotated)，
// rotated 表示本次调用是否触发了前缀轮换。
// 回调在生成的热路径上同步执行，实现方应保证其开销极小；
// 指标上报请使用 lidmetrics 包的计数器实现。
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}
