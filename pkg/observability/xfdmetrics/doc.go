// Package xfdmetrics 将进程 RLIMIT_NOFILE 状态暴露为 OpenTelemetry 指标。
//
// # 设计理念
//
// 指标是观察窗口而非缓存：每次采集都通过 [github.com/omeyang/limitkit/pkg/util/xfdlimit]
// 即时读取操作系统状态。注册一次，之后由所接入的 MeterProvider 决定采集节奏。
//
// # 使用示例
//
//	reg, err := xfdmetrics.Register()
//	if err != nil {
//		// 不支持的平台返回 xfdlimit.ErrUnsupportedPlatform，跳过注册即可
//	}
//	defer reg.Unregister()
//
// # 指标命名
//
//   - limitkit.nofile.soft:    当前 soft limit
//   - limitkit.nofile.hard:    当前 hard limit
//   - limitkit.nofile.maximum: 后续提升能达到的最大 soft limit
package xfdmetrics
