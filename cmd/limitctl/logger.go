package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// parseLogLevel 解析日志级别字符串，大小写不敏感。
func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("未知日志级别 %q（支持 debug/info/warn/error）", s)
	}
}

// newLogger 构建输出到 stderr 的日志器。
// 日志走 stderr，stdout 保留给命令结果，便于管道消费。
func newLogger(level, format string) (*slog.Logger, error) {
	lvl, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("未知日志格式 %q（支持 text/json）", format)
	}
}
