// Package lidmetrics 提供基于 OpenTelemetry 的标识符生成指标观测。
//
// 本包实现 lid.Observer 接口，把生成事件转换为两个 OTel 单调计数器，
// 便于在已有的 OTel 指标管线中监控生成速率与前缀轮换频率。
//
// # 快速开始
//
//	obs, err := lidmetrics.New()
//	if err != nil {
//	    return err
//	}
//	gen, err := lid.NewGenerator(lid.WithObserver(obs))
//	if err != nil {
//	    return err
//	}
//	id, _ := gen.Generate()
//
// 默认从全局 otel.GetMeterProvider() 获取 Meter；测试或多租户场景
// 可通过 WithMeterProvider 注入独立的 Provider。
//
// # 指标
//
//   - lid.generated.total: 生成的标识符总数
//   - lid.rotation.total:  前缀轮换次数（序列回绕触发）
//
// 两者的比值即平均每个前缀承载的标识符数量，可用于校验序列长度
// 与增量区间的配置是否符合预期。
package lidmetrics
