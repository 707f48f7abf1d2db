package lid

// 仅测试可见的内部入口。

// withInitialState 固定初始 sequence 与 increment，绕过随机抽取，
// 用于确定性场景（如从 0 起步、精确触发回绕）。
func withInitialState(seq, inc uint64) Option {
	return func(o *options) {
		o.initialSequence = &seq
		o.initialIncrement = &inc
	}
}

// resetGlobal 重置全局共享实例状态，仅用于测试。
func resetGlobal() {
	initMu.Lock()
	defer initMu.Unlock()
	defaultGen.Store(nil)
	initCalled = false
}
