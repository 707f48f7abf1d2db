package lid

// Observer 观测生成过程的回调接口。
//
// 核心包不依赖任何指标系统；需要 OpenTelemetry 计数器时，
// 使用 lidmetrics 包提供的实现并通过 [WithObserver] 挂载。
type Observer interface {
	// ObserveGenerate 在每次成功生成后调用。
	// rotated 表示本次调用是否因序列回绕触发了前缀轮换。
	ObserveGenerate(rotated bool)
}
