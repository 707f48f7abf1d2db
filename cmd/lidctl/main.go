// lidctl 是 lid 标识符生成器的命令行工具。
//
// 用法:
//
//	lidctl <命令> [命令参数]
//
// 命令:
//
//	gen            生成标识符
//	inspect <id>   拆解标识符（前缀 + 序列值）
//	bench          本机吞吐量测量（与 UUID/Sonyflake 对比）
//	help           显示帮助信息
//
// gen 命令说明:
//
//	形状参数（--alphabet/--symbols/--prefix-length/--sequence-length）
//	与 --config 互斥：配置文件存在时以文件为准，避免两套参数的
//	合并语义歧义。
//
//	--parallel 大于 1 时每个 worker 持有独立的生成器实例，
//	各自拥有独立前缀，互不竞争。
//
// 退出码:
//
//	0: 命令执行成功
//	1: 命令执行失败（生成错误、配置加载失败等）
//	2: 参数错误（互斥参数、无效形状、未知命令等）
//
// 示例:
//
//	lidctl gen                            # 生成一个默认形状的标识符
//	lidctl gen -n 100                     # 生成 100 个
//	lidctl gen -n 100000 --parallel 8     # 8 个独立生成器并行生成
//	lidctl gen --alphabet base62 --prefix-length 8 --sequence-length 6
//	lidctl gen --config lid.yaml          # 从配置文件读取形状
//	lidctl inspect JTKGVDOFYWOPDWMFLVGEYUCQ1G9J
//	lidctl bench -n 1000000               # 与 UUID v4 / Sonyflake 对比
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "lidctl",
		Usage:   "lid 标识符生成器命令行工具",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Commands: []*cli.Command{
			createGenCommand(),
			createInspectCommand(),
			createBenchCommand(),
		},
		DefaultCommand: "help",
		Authors: []any{
			"lid contributors",
		},
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			// ExitCoder 错误（如未知命令）的消息需在此输出，
			// 替代 HandleExitCoder 的默认 os.Exit 行为。
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
		Description: `lidctl 用于生成、拆解和度量 lid 紧凑标识符。

标识符形状 = 随机前缀（定期轮换）+ 随机步长回绕序列，
默认 36 字符字母表、16 字符前缀、12 字符序列段。`,
	}
}

func run() int {
	app := createApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupSignalHandler(cancel)

	if err := app.Run(ctx, os.Args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		// CLI 框架产生的参数错误（如未知 flag、未知命令）也返回退出码 2，
		// 与文档契约"参数错误 → 退出码 2"保持一致。
		if isCLIUsageError(err) {
			// ExitErrHandler 或 flag 解析器已向 stderr 输出错误详情，此处仅设置退出码
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}

	return 0
}
