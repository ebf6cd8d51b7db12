// limitctl 查看并提升进程的打开文件数限制（RLIMIT_NOFILE）。
//
// 用法:
//
//	limitctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config      配置文件路径 (.yaml/.yml/.json)
//	    --log-level   日志级别 (debug/info/warn/error, 默认: info)
//	    --log-format  日志格式 (text/json, 默认: text)
//	-o, --output      结果输出格式 (text/json, 默认: text)
//
// 命令:
//
//	show           查看当前 soft/hard 限制与可达上限（默认命令）
//	raise          提升 soft limit（--target 指定目标，0 表示系统最大值）
//	exec <cmd>     提升 soft limit 后执行命令，限制由子进程继承
//	help           显示帮助信息
//
// raise 命令说明:
//
//	提升只作用于 soft limit，hard limit 永不改动（提升 hard limit 需要特权，
//	不尝试）。目标超出可达上限时自动收敛，绝不降低现有值。
//	没有已知提升策略的平台视为 "无需处理"，而非失败。
//
// 退出码:
//
//	0: 命令执行成功（含平台不支持时的如实回答）
//	1: 命令执行失败（查询或提升出错、子命令无法启动）
//	2: 参数错误（未知输出格式、未知 flag、未知命令等）
//
//	exec 命令在子进程正常结束时原样透传其退出码。
//
// 示例:
//
//	limitctl show                          # 查看当前限制
//	limitctl -o json show                  # 以 JSON 输出
//	limitctl raise                         # 提升到系统允许的最大值
//	limitctl raise --target 65536          # 提升到 65536（超出上限时收敛）
//	limitctl exec -- myserver --port 8080  # 提升后启动服务
//	limitctl -c /etc/limitctl.yaml raise   # 使用配置文件中的默认目标
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
		Name:    "limitctl",
		Usage:   "进程打开文件数限制（RLIMIT_NOFILE）管理工具",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径 (.yaml/.yml/.json)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "日志级别 (debug/info/warn/error)",
				Value: "info",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "日志格式 (text/json)",
				Value: "text",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "结果输出格式 (text/json)",
				Value:   "text",
			},
		},
		Commands:       createCommands(),
		DefaultCommand: "show",
		Authors: []any{
			"XKit Team",
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
		Description: `limitctl 在进程启动前或运行环境诊断时管理 RLIMIT_NOFILE。

主要命令:
  show                查看 soft/hard 限制与可达上限
  raise               提升 soft limit
    --target, -t      提升目标（0 表示系统最大值）
  exec <cmd> [args]   提升后执行命令（rlimit 由子进程继承）
    --best-effort     提升失败时仍继续执行`,
	}
}

func run() int {
	app := createApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 设置信号处理
	setupSignalHandler(cancel)

	if err := app.Run(ctx, os.Args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
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
