// Package lid 提供紧凑、定长、近似局部有序的唯一标识符生成能力。
//
// # 设计理念
//
// lid 面向"无中心协调的记录标识"场景：短于 UUID、同一纪元内字典序
// 递增、单实例构造性不重复。核心算法只有三步：
//   - 随机前缀：P 个符号，crypto/rand 抽取，序列回绕时整体轮换
//   - 随机步长序列：计数器每次加固定 increment，模 BASE^S 回绕
//   - 定宽编码：前缀‖序列 经符号表渲染为 P+S 个字符
//
// 唯一性由两层独立保证构成：跨实例靠前缀熵（两个独立实例撞前缀的
// 概率约为 BASE^-P）；单实例内序列在整个纪元不重复，回绕瞬间前缀
// 先被替换，因此单实例终生不产出重复 ID —— 这是构造性保证而非概率。
//
// # ID 结构
//
// 默认配置（Base36，P=16，S=12）下 ID 总长 28 字符：
//
//	GKVPQZ3T18MWQJ5C 9H2K4M7P1R3T
//	└─ 16 符号前缀 ─┘└ 12 符号序列 ┘
//
// 同一前缀纪元内输出按字典序严格递增（定宽零填充编码保序）；
// 跨纪元之间不保证顺序。
//
// # 快速开始
//
// 包级共享实例（互斥锁串行化，适合低频或图省事的场景）：
//
//	id, err := lid.Generate()
//	if err != nil {
//	    return err
//	}
//	// 或一行式
//	id := lid.MustGenerate()
//
// 私有实例（吞吐优先，每个 worker 一个，无锁无协调）：
//
//	gen, err := lid.NewGenerator()
//	if err != nil {
//	    return err
//	}
//	id, _ := gen.Generate()
//
// # 自定义配置
//
//	gen, err := lid.NewGenerator(
//	    lid.WithAlphabet(lid.Base62),
//	    lid.WithPrefixLength(12),
//	    lid.WithSequenceLength(8),
//	    lid.WithIncrementRange(50_000, 5_000_000),
//	)
//
// 全局实例的配置通过 Init 在启动时一次性完成：
//
//	if err := lid.Init(lid.WithAlphabet(lid.Base32)); err != nil {
//	    log.Fatal(err)
//	}
//
// # 并发模型
//
// Generator 实例本身不是并发安全的。两种受支持的用法：
//
//   - 每 worker 私有实例：完全并行，前缀独立随机使跨实例碰撞
//     概率维持在约 BASE^-P，无需锁
//   - 包级 Generate：全局单例 + 互斥锁，锁覆盖状态推进与缓冲区
//     读取的全过程，吞吐受锁竞争约束
//
// Generate 是有界的纯 CPU 工作，不会阻塞，唯一的例外是构造和
// 前缀轮换时对操作系统随机数设施的短暂调用。没有取消和超时语义。
//
// # 熵源
//
// 前缀使用 crypto/rand（拒绝采样，严格均匀）；sequence 与 increment
// 的初始抽取使用 math/rand/v2。这一不对称是刻意的：前缀需要抵抗
// 外部预测与枚举，序列节奏只是内部工程参数。
//
// # 非目标
//
// lid 不提供：标识符的密码学不可伪造性、绝对（而非统计意义上的）
// 全局唯一、跨独立实例的全局单调序、进程重启后的状态延续。
//
// # 与其他方案对比
//
//	| 特性         | lid (默认)        | UUID v4   | Sonyflake     |
//	|--------------|-------------------|-----------|---------------|
//	| 长度         | 28 字符（可配）   | 36 字符   | 12-13 字符    |
//	| 局部有序     | 纪元内字典序递增  | 无        | 全局时序      |
//	| 时钟依赖     | 无                | 无        | 有（回拨敏感）|
//	| 机器标识     | 不需要            | 不需要    | 需要          |
//	| 单实例重复   | 构造性不可能      | 概率极低  | 构造性不可能  |
//
// 运行 go test -bench 可获取当前硬件上与 uuid/sonyflake 的吞吐对比。
package lid
