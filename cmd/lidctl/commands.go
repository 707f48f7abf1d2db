package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sony/sonyflake/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/lilyrrose/lid/pkg/lid"
	"github.com/lilyrrose/lid/pkg/lidconf"
)

// usageError 表示参数层面的错误，映射到退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// isCLIUsageError 判断错误是否来自 CLI 框架的参数解析。
func isCLIUsageError(err error) bool {
	if _, ok := err.(cli.ExitCoder); ok {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "flag provided but not defined") ||
		strings.Contains(msg, "No help topic")
}

// genParams 收集 gen/inspect 命令的形状参数。
type genParams struct {
	configPath string
	alphabet   string
	symbols    string
	prefixLen  int
	seqLen     int
}

// shapeFlags 形状相关 flag，gen 与 inspect 共用。
func shapeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "配置文件路径 (YAML/JSON)",
		},
		&cli.StringFlag{
			Name:  "alphabet",
			Usage: "预定义字母表 (base32/base36/base62)",
		},
		&cli.StringFlag{
			Name:  "symbols",
			Usage: "自定义字母表符号串",
		},
		&cli.IntFlag{
			Name:  "prefix-length",
			Usage: "前缀长度",
		},
		&cli.IntFlag{
			Name:  "sequence-length",
			Usage: "序列段长度",
		},
	}
}

// paramsFromCommand 从已解析的 flag 中取出形状参数。
func paramsFromCommand(cmd *cli.Command) genParams {
	return genParams{
		configPath: cmd.String("config"),
		alphabet:   cmd.String("alphabet"),
		symbols:    cmd.String("symbols"),
		prefixLen:  cmd.Int("prefix-length"),
		seqLen:     cmd.Int("sequence-length"),
	}
}

// hasShapeFlags 判断是否指定了任何命令行形状参数。
func (p genParams) hasShapeFlags() bool {
	return p.alphabet != "" || p.symbols != "" || p.prefixLen != 0 || p.seqLen != 0
}

// options 把形状参数转换为生成器选项。
// 配置文件与命令行形状参数互斥。
func (p genParams) options() ([]lid.Option, error) {
	if p.configPath != "" {
		if p.hasShapeFlags() {
			return nil, &usageError{msg: "--config 与形状参数 (--alphabet/--symbols/--prefix-length/--sequence-length) 互斥"}
		}
		f, err := lidconf.Load(p.configPath)
		if err != nil {
			return nil, fmt.Errorf("加载配置失败: %w", err)
		}
		cfg, err := f.Config()
		if err != nil {
			return nil, fmt.Errorf("解析配置失败: %w", err)
		}
		return cfg.Options()
	}

	var opts []lid.Option
	switch {
	case p.alphabet != "" && p.symbols != "":
		return nil, &usageError{msg: "--alphabet 与 --symbols 互斥"}
	case p.alphabet != "":
		ab, err := resolveAlphabet(p.alphabet)
		if err != nil {
			return nil, err
		}
		opts = append(opts, lid.WithAlphabet(ab))
	case p.symbols != "":
		ab, err := lid.NewAlphabet(p.symbols)
		if err != nil {
			return nil, fmt.Errorf("无效字母表: %w", err)
		}
		opts = append(opts, lid.WithAlphabet(ab))
	}
	if p.prefixLen != 0 {
		opts = append(opts, lid.WithPrefixLength(p.prefixLen))
	}
	if p.seqLen != 0 {
		opts = append(opts, lid.WithSequenceLength(p.seqLen))
	}
	return opts, nil
}

// resolveAlphabet 按名称解析预定义字母表。
func resolveAlphabet(name string) (lid.Alphabet, error) {
	switch strings.ToLower(name) {
	case "base32":
		return lid.Base32, nil
	case "base36":
		return lid.Base36, nil
	case "base62":
		return lid.Base62, nil
	default:
		return lid.Alphabet{}, &usageError{msg: fmt.Sprintf("未知字母表 %q (可选: base32/base36/base62)", name)}
	}
}

// createGenCommand 创建 gen 子命令。
func createGenCommand() *cli.Command {
	return &cli.Command{
		Name:    "gen",
		Aliases: []string{"g"},
		Usage:   "生成标识符",
		Flags: append(shapeFlags(),
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "生成数量",
				Value:   1,
			},
			&cli.IntFlag{
				Name:    "parallel",
				Aliases: []string{"p"},
				Usage:   "并行 worker 数（每个 worker 独立生成器）",
				Value:   1,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cmdGen(ctx, os.Stdout, paramsFromCommand(cmd),
				cmd.Int("count"), cmd.Int("parallel"))
		},
	}
}

// createInspectCommand 创建 inspect 子命令。
func createInspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Aliases:   []string{"i"},
		Usage:     "拆解标识符（前缀 + 序列值）",
		ArgsUsage: "<id>",
		Flags:     shapeFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 1 {
				return &usageError{msg: "inspect 命令需要且仅需要一个标识符参数"}
			}
			return cmdInspect(os.Stdout, paramsFromCommand(cmd), args[0])
		},
	}
}

// createBenchCommand 创建 bench 子命令。
func createBenchCommand() *cli.Command {
	return &cli.Command{
		Name:    "bench",
		Usage:   "本机吞吐量测量（与 UUID v4 / Sonyflake 对比）",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "每种生成器的生成次数",
				Value:   1_000_000,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cmdBench(ctx, os.Stdout, cmd.Int("count"))
		},
	}
}

// cmdGen 生成标识符并逐行输出。
func cmdGen(ctx context.Context, w io.Writer, params genParams, count, parallel int) error {
	if count < 1 {
		return &usageError{msg: "--count 必须大于 0"}
	}
	if parallel < 1 {
		return &usageError{msg: "--parallel 必须大于 0"}
	}
	opts, err := params.options()
	if err != nil {
		return err
	}

	if parallel == 1 {
		gen, err := lid.NewGenerator(opts...)
		if err != nil {
			return fmt.Errorf("创建生成器失败: %w", err)
		}
		return writeIDs(ctx, w, gen, count)
	}
	return genParallel(ctx, w, opts, count, parallel)
}

// writeIDs 用单个生成器输出 count 个标识符。
func writeIDs(ctx context.Context, w io.Writer, gen *lid.Generator, count int) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		id, err := gen.Generate()
		if err != nil {
			return fmt.Errorf("生成失败: %w", err)
		}
		bw.WriteString(id)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// genParallel 多 worker 并行生成。
// 每个 worker 持有独立的生成器实例（独立前缀），结果经 channel 汇聚
// 到单个写入 goroutine，保证输出按行完整。
func genParallel(ctx context.Context, w io.Writer, opts []lid.Option, count, parallel int) error {
	if parallel > count {
		parallel = count
	}

	ids := make(chan string, 1024)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < parallel; i++ {
		// 余数摊给前几个 worker
		n := count / parallel
		if i < count%parallel {
			n++
		}
		g.Go(func() error {
			gen, err := lid.NewGenerator(opts...)
			if err != nil {
				return fmt.Errorf("创建生成器失败: %w", err)
			}
			for j := 0; j < n; j++ {
				id, err := gen.Generate()
				if err != nil {
					return fmt.Errorf("生成失败: %w", err)
				}
				select {
				case ids <- id:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	writeDone := make(chan error, 1)
	go func() {
		bw := bufio.NewWriter(w)
		for id := range ids {
			bw.WriteString(id)
			bw.WriteByte('\n')
		}
		writeDone <- bw.Flush()
	}()

	err := g.Wait()
	close(ids)
	if werr := <-writeDone; err == nil {
		err = werr
	}
	return err
}

// cmdInspect 拆解标识符。
func cmdInspect(w io.Writer, params genParams, id string) error {
	opts, err := params.options()
	if err != nil {
		return err
	}
	gen, err := lid.NewGenerator(opts...)
	if err != nil {
		return fmt.Errorf("创建生成器失败: %w", err)
	}

	parts, err := gen.Decompose(id)
	if err != nil {
		return fmt.Errorf("拆解失败: %w", err)
	}

	fmt.Fprintf(w, "前缀:   %s\n", parts.Prefix)
	fmt.Fprintf(w, "序列值: %d\n", parts.Sequence)
	fmt.Fprintf(w, "长度:   %d (前缀 %d + 序列 %d)\n",
		gen.Len(), gen.PrefixLength(), gen.SequenceLength())
	return nil
}

// benchResult 单个生成器的测量结果。
type benchResult struct {
	name    string
	sample  string
	elapsed time.Duration
}

// cmdBench 顺序测量各生成器的本机吞吐量。
func cmdBench(ctx context.Context, w io.Writer, count int) error {
	if count < 1 {
		return &usageError{msg: "--count 必须大于 0"}
	}

	results := make([]benchResult, 0, 3)

	lidRes, err := benchLid(ctx, count)
	if err != nil {
		return err
	}
	results = append(results, lidRes)

	uuidRes, err := benchUUID(ctx, count)
	if err != nil {
		return err
	}
	results = append(results, uuidRes)

	flakeRes, err := benchSonyflake(ctx, count)
	if err != nil {
		return err
	}
	results = append(results, flakeRes)

	fmt.Fprintf(w, "%-12s %-40s %12s %14s\n", "生成器", "样本", "耗时", "吞吐量")
	for _, r := range results {
		opsPerSec := float64(count) / r.elapsed.Seconds()
		fmt.Fprintf(w, "%-12s %-40s %12s %11.0f/s\n",
			r.name, r.sample, r.elapsed.Round(time.Millisecond), opsPerSec)
	}
	return nil
}

func benchLid(ctx context.Context, count int) (benchResult, error) {
	gen, err := lid.NewGenerator()
	if err != nil {
		return benchResult{}, err
	}
	sample, err := gen.Generate()
	if err != nil {
		return benchResult{}, err
	}

	start := time.Now()
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return benchResult{}, err
		}
		if _, err := gen.Generate(); err != nil {
			return benchResult{}, err
		}
	}
	return benchResult{name: "lid", sample: sample, elapsed: time.Since(start)}, nil
}

func benchUUID(ctx context.Context, count int) (benchResult, error) {
	sample := uuid.NewString()

	start := time.Now()
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return benchResult{}, err
		}
		_ = uuid.NewString()
	}
	return benchResult{name: "uuid-v4", sample: sample, elapsed: time.Since(start)}, nil
}

func benchSonyflake(ctx context.Context, count int) (benchResult, error) {
	sf, err := sonyflake.New(sonyflake.Settings{})
	if err != nil {
		return benchResult{}, fmt.Errorf("创建 sonyflake 失败: %w", err)
	}
	id, err := sf.NextID()
	if err != nil {
		return benchResult{}, err
	}
	sample := strconv.FormatInt(id, 36)

	start := time.Now()
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return benchResult{}, err
		}
		if _, err := sf.NextID(); err != nil {
			return benchResult{}, err
		}
	}
	return benchResult{name: "sonyflake", sample: sample, elapsed: time.Since(start)}, nil
}

// setupSignalHandler 设置信号处理。
// 设计决策: 第一次信号优雅取消，第二次信号强制退出（退出码 130 = 128 + SIGINT）。
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel() // 第一次信号: 优雅取消

		<-sigCh
		signal.Stop(sigCh) // 回收订阅
		os.Exit(130) // 第二次信号: 强制退出
	}()
}
