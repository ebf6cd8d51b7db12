package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/limitkit/pkg/util/xfdlimit"
)

// 结果输出格式。
const (
	outputText = "text"
	outputJSON = "json"
)

// exitError 表示需要特定退出码但无需额外输出的场景
// （命令内部已完成所有必要的输出，main 只需设置退出码）。
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// usageError 表示命令参数使用错误，统一映射到退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

// isCLIUsageError 判断是否为 CLI 框架自身产生的参数错误
// （未知命令、未知 flag 等）。
func isCLIUsageError(err error) bool {
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return true
	}
	// flag 解析错误不实现 ExitCoder，按标准库 flag 包的固定消息识别。
	return strings.Contains(err.Error(), "flag provided but not defined")
}

// appEnv 为一次命令执行解析后的运行环境。
type appEnv struct {
	cfg    *fileConfig
	logger *slog.Logger
}

// resolveEnv 合并配置文件与命令行参数，构建日志器。
// 优先级: 显式命令行参数 > 配置文件 > 内置默认值。
func resolveEnv(cmd *cli.Command) (*appEnv, error) {
	cfg, err := loadFileConfig(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(cfg, cmd)

	logger, err := newLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, &usageError{msg: err.Error()}
	}

	return &appEnv{cfg: cfg, logger: logger}, nil
}

// applyFlagOverrides 将显式设置的命令行参数覆盖到配置上。
func applyFlagOverrides(cfg *fileConfig, cmd *cli.Command) {
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		cfg.Log.Format = cmd.String("log-format")
	}
	if cmd.IsSet("output") {
		cfg.Output = cmd.String("output")
	}
}

// resolveTarget 解析提升目标: 显式命令行参数 > 配置文件 > 0（系统最大值）。
func resolveTarget(cfg *fileConfig, cmd *cli.Command) uint64 {
	if cmd.IsSet("target") {
		return uint64(cmd.Uint("target"))
	}
	return cfg.Raise.Target
}

// createCommands 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createShowCommand(),
		createRaiseCommand(),
		createExecCommand(),
	}
}

// createShowCommand 创建查看命令。
func createShowCommand() *cli.Command {
	return &cli.Command{
		Name:    "show",
		Aliases: []string{"s"},
		Usage:   "查看当前 RLIMIT_NOFILE 状态",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env, err := resolveEnv(cmd)
			if err != nil {
				return err
			}
			return cmdShow(ctx, env)
		},
	}
}

// createRaiseCommand 创建提升命令。
func createRaiseCommand() *cli.Command {
	return &cli.Command{
		Name:    "raise",
		Aliases: []string{"r"},
		Usage:   "提升 soft limit（默认提升到系统允许的最大值）",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:    "target",
				Aliases: []string{"t"},
				Usage:   "提升目标（0 表示系统最大值）",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env, err := resolveEnv(cmd)
			if err != nil {
				return err
			}
			return cmdRaise(ctx, env, resolveTarget(env.cfg, cmd))
		},
	}
}

// createExecCommand 创建提升后执行命令。
func createExecCommand() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Aliases:   []string{"x"},
		Usage:     "提升 soft limit 后执行命令（限制由子进程继承）",
		ArgsUsage: "<command> [args...]",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:    "target",
				Aliases: []string{"t"},
				Usage:   "提升目标（0 表示系统最大值）",
			},
			&cli.BoolFlag{
				Name:  "best-effort",
				Usage: "提升失败时仍继续执行命令",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env, err := resolveEnv(cmd)
			if err != nil {
				return err
			}
			bestEffort := cmd.Bool("best-effort")
			if !cmd.IsSet("best-effort") {
				bestEffort = env.cfg.Raise.BestEffort
			}
			return cmdExec(ctx, env, resolveTarget(env.cfg, cmd), bestEffort, cmd.Args().Slice())
		},
	}
}

// showReport 为 show 命令的输出结构。
type showReport struct {
	Supported bool   `json:"supported"`
	Soft      uint64 `json:"soft,omitempty"`
	Hard      uint64 `json:"hard,omitempty"`
	Maximum   uint64 `json:"maximum,omitempty"`
}

// raiseReport 为 raise 命令的输出结构。
type raiseReport struct {
	Supported bool   `json:"supported"`
	Limit     uint64 `json:"limit,omitempty"`
}

// cmdShow 查看当前 RLIMIT_NOFILE 状态。
func cmdShow(ctx context.Context, env *appEnv) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	soft, hard, err := xfdlimit.Current()
	if errors.Is(err, xfdlimit.ErrUnsupportedPlatform) {
		// 平台不支持是如实的回答，不是失败。
		return renderShow(env.cfg.Output, showReport{})
	}
	if err != nil {
		return fmt.Errorf("查询当前限制失败: %w", err)
	}

	maximum, err := xfdlimit.Maximum()
	if err != nil {
		return fmt.Errorf("查询可达上限失败: %w", err)
	}

	env.logger.Debug("已读取当前限制", "soft", soft, "hard", hard, "maximum", maximum)
	return renderShow(env.cfg.Output, showReport{
		Supported: true,
		Soft:      soft,
		Hard:      hard,
		Maximum:   maximum,
	})
}

// cmdRaise 提升 soft limit。target 为 0 时提升到系统允许的最大值。
func cmdRaise(ctx context.Context, env *appEnv, target uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	report, err := raiseLimit(env, target)
	if err != nil {
		return err
	}
	return renderRaise(env.cfg.Output, report)
}

// cmdExec 先提升 soft limit，再以继承的限制执行子命令。
// rlimit 跨 exec 继承，子进程无需感知本工具即可获得提升后的 soft limit。
func cmdExec(ctx context.Context, env *appEnv, target uint64, bestEffort bool, args []string) error {
	if len(args) == 0 {
		return &usageError{msg: "exec 需要指定要执行的命令（用 -- 分隔，例如: limitctl exec -- myserver）"}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	report, err := raiseLimit(env, target)
	switch {
	case err != nil && bestEffort:
		env.logger.Warn("提升限制失败，继续执行命令", "error", err)
	case err != nil:
		return err
	case report.Supported:
		env.logger.Debug("以提升后的限制执行命令", "limit", report.Limit, "command", args[0])
	}

	child := exec.Command(args[0], args[1:]...)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	if err := child.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) && ee.ExitCode() >= 0 {
			// 子进程自身的退出码原样透传。
			return &exitError{code: ee.ExitCode()}
		}
		return fmt.Errorf("执行命令失败: %w", err)
	}
	return nil
}

// raiseLimit 执行提升并组装结果报告。
// 平台不支持时返回 Supported=false 的报告而非错误。
func raiseLimit(env *appEnv, target uint64) (raiseReport, error) {
	if target > 0 {
		limit, err := xfdlimit.RaiseTo(target)
		if errors.Is(err, xfdlimit.ErrUnsupportedPlatform) {
			return raiseReport{}, nil
		}
		if err != nil {
			return raiseReport{}, fmt.Errorf("提升限制失败: %w", err)
		}
		env.logger.Debug("soft limit 已就位", "target", target, "limit", limit)
		return raiseReport{Supported: true, Limit: limit}, nil
	}

	out, err := xfdlimit.Raise()
	if err != nil {
		return raiseReport{}, fmt.Errorf("提升限制失败: %w", err)
	}
	if out.Supported {
		env.logger.Debug("soft limit 已就位", "limit", out.Limit)
	}
	return raiseReport{Supported: out.Supported, Limit: out.Limit}, nil
}

// renderShow 按输出格式渲染状态报告。
func renderShow(format string, report showReport) error {
	switch format {
	case outputJSON:
		return printJSON(report)
	case outputText:
		if !report.Supported {
			fmt.Println("当前平台不支持 RLIMIT_NOFILE 查询")
			return nil
		}
		fmt.Printf("soft:    %s\n", formatLimit(report.Soft))
		fmt.Printf("hard:    %s\n", formatLimit(report.Hard))
		fmt.Printf("maximum: %s\n", formatLimit(report.Maximum))
		return nil
	default:
		return &usageError{msg: fmt.Sprintf("未知输出格式 %q（支持 text/json）", format)}
	}
}

// renderRaise 按输出格式渲染提升结果。
func renderRaise(format string, report raiseReport) error {
	switch format {
	case outputJSON:
		return printJSON(report)
	case outputText:
		if !report.Supported {
			fmt.Println("当前平台无需处理")
			return nil
		}
		fmt.Printf("soft limit: %s\n", formatLimit(report.Limit))
		return nil
	default:
		return &usageError{msg: fmt.Sprintf("未知输出格式 %q（支持 text/json）", format)}
	}
}

// printJSON 以缩进 JSON 输出到 stdout。
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatLimit 渲染限制值。
// RLIM_INFINITY 在 Linux 上是 ^uint64(0)、在 Darwin 上是 1<<63-1，
// 两种哨兵值均以 "unlimited" 输出。
func formatLimit(v uint64) string {
	if v == math.MaxUint64 || v == math.MaxInt64 {
		return "unlimited"
	}
	return strconv.FormatUint(v, 10)
}

// setupSignalHandler 设置信号处理。
// 第一次信号触发优雅取消，第二次信号立即强制退出。
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()

		// 第二次信号强制退出（130 = 128 + SIGINT 的约定退出码）
		<-sigCh
		signal.Stop(sigCh)
		os.Exit(130)
	}()
}
