// Package xfdlimit 提供进程打开文件数软限制（RLIMIT_NOFILE soft limit）的提升工具。
//
// # 功能概览
//
//   - [Raise]: 将 soft limit 提升到操作系统允许的最大值（按平台策略，见下）
//   - [RaiseTo]: 将 soft limit 向指定目标提升，自动收敛到可达上限，绝不降低现值
//   - [Current]: 查询当前 RLIMIT_NOFILE 的 (soft, hard) 值
//   - [Maximum]: 查询后续 [Raise] 能达到的最大 soft limit
//
// # 平台策略
//
// 提升策略在编译期按目标平台选择：
//
//   - Darwin（macOS/iOS）：内核通过 sysctl kern.maxfilesperproc 公布单进程
//     打开文件数上限，新 soft limit 取该上限与 hard limit 的较小值。
//   - Linux（含 Android）：没有独立的内核上限概念，soft limit 直接提升到 hard limit。
//   - 其他平台：[Raise] 为显式 no-op，返回 Supported 为 false 的 [Outcome] 而非错误；
//     [RaiseTo]、[Current]、[Maximum] 返回 [ErrUnsupportedPlatform]。
//
// hard limit 在任何平台上都不会被改动：提升 hard limit 需要特权，本包不尝试。
//
// # 失败报告
//
// 任何底层系统调用失败都会立即转换为 [StepError]，标记失败步骤
// （sysctl / getrlimit / setrlimit）并包装操作系统原始错误。
// 本包不重试、不吞错、不记日志，提升失败是否致命由调用方决定。
package xfdlimit
