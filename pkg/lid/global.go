package lid

import (
	"sync"
	"sync/atomic"
)

// =============================================================================
// 全局共享实例
// =============================================================================

// sharedGenerator 在互斥锁后面持有一个 Generator。
// 锁必须同时覆盖状态推进和结果缓冲区的读取，否则并发调用可能
// 观察到写了一半的缓冲区或拿到相同输出。Generate 返回的是缓冲区
// 副本，持锁期间完成拷贝即可安全交还给调用方。
type sharedGenerator struct {
	mu  sync.Mutex
	gen *Generator
}

func (s *sharedGenerator) generate() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen.Generate()
}

var (
	defaultGen atomic.Pointer[sharedGenerator]
	initMu     sync.Mutex
	// initCalled 标记用户是否显式调用过 Init。一旦为 true，
	// ensureInitialized 不再自动初始化，避免覆盖用户意图。受 initMu 保护。
	initCalled bool
)

// Init 初始化全局共享生成器。
//
// 如果不调用 Init，首次生成 ID 时会使用默认配置自动初始化。
// Init 只能成功一次，成功后重复调用返回 [ErrAlreadyInitialized]；
// 如果在 Init 之前已通过 Generate 触发了自动初始化，同样返回
// [ErrAlreadyInitialized]。建议在应用启动时调用，尽早暴露配置问题。
//
// 与 sync.Once 不同，Init 失败后可以修正配置再次调用重试。
// 如果需要多个独立生成器（如每 worker 一个），请使用 NewGenerator。
//
// 共享实例随进程存活，从不提前销毁，也没有显式的销毁接口。
func Init(opts ...Option) error {
	initMu.Lock()
	defer initMu.Unlock()
	if defaultGen.Load() != nil {
		return ErrAlreadyInitialized
	}
	initCalled = true
	gen, err := NewGenerator(opts...)
	if err != nil {
		return err
	}
	defaultGen.Store(&sharedGenerator{gen: gen})
	return nil
}

// ensureInitialized 确保共享生成器已初始化。
//
// double-checked locking：快速路径仅一次原子 Load。
// 用户显式调用过 Init 但失败时，不自动用默认配置覆盖用户意图，
// 返回 ErrNotInitialized 提示重新 Init。
func ensureInitialized() (*sharedGenerator, error) {
	if s := defaultGen.Load(); s != nil {
		return s, nil
	}
	initMu.Lock()
	defer initMu.Unlock()
	if s := defaultGen.Load(); s != nil {
		return s, nil
	}
	if initCalled {
		return nil, ErrNotInitialized
	}
	gen, err := NewGenerator()
	if err != nil {
		return nil, err
	}
	s := &sharedGenerator{gen: gen}
	defaultGen.Store(s)
	return s, nil
}

// Generate 通过全局共享实例生成下一个标识符。
//
// 调用被互斥锁完全串行化，任意并发度下输出互不相同。
// 这是用吞吐换简单的便捷入口：高并发场景请为每个 worker
// 各自 NewGenerator，跨实例碰撞概率约为 BASE^-P。
func Generate() (string, error) {
	s, err := ensureInitialized()
	if err != nil {
		return "", err
	}
	return s.generate()
}

// MustGenerate 通过全局共享实例生成标识符，失败时 panic。
//
// 默认配置下失败只可能来自被 Init 失败禁用的自动初始化。
func MustGenerate() string {
	id, err := Generate()
	if err != nil {
		panic(err)
	}
	return id
}
