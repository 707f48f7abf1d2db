// Package lidconf 提供 lid 生成器的声明式配置：从 YAML/JSON 文件
// 或字节数据加载，解析为 lid 构造选项，并支持文件变更时的自动重载。
//
// # 快速开始
//
// 配置文件（YAML 或 JSON，格式由扩展名决定）：
//
//	alphabet: base62
//	prefix_length: 12
//	sequence_length: 8
//	min_increment: 100
//	max_increment: 1000
//
// 加载并构造生成器：
//
//	f, err := lidconf.Load("/etc/app/lid.yaml")
//	if err != nil {
//	    return err
//	}
//	gen, err := f.Generator()
//
// 未出现的字段回落到 lid 包的默认值，空文件等价于默认配置。
// 自定义符号表用 symbols 字段（与 alphabet 互斥）：
//
//	symbols: "0123456789abcdef"
//
// # 无文件场景
//
// K8s ConfigMap 等场景用 LoadBytes 从字节数据加载：
//
//	f, err := lidconf.LoadBytes(data, lidconf.FormatYAML)
//
// # 热重载
//
// Watch 监视配置文件变更（fsnotify，带防抖），变更后自动 Reload
// 并回调。生成器本身构造后不可变，重载的意义在于用新配置构造
// 新实例去替换旧实例，替换时机由调用方掌握：
//
//	w, err := lidconf.Watch(f, func(f *lidconf.File, err error) {
//	    if err != nil {
//	        return
//	    }
//	    if gen, err := f.Generator(); err == nil {
//	        swapGenerator(gen)
//	    }
//	})
//	w.StartAsync()
//	defer w.Stop()
package lidconf
