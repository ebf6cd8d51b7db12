package xfdlimit

import (
	"errors"
	"fmt"
)

// kernMaxFilesPerProc 为 BSD 系内核公布单进程最大打开文件数的 sysctl 名称。
const kernMaxFilesPerProc = "kern.maxfilesperproc"

var (
	// ErrInvalidLimit 表示目标限制值无效。
	ErrInvalidLimit = errors.New("xfdlimit: target limit must be greater than 0")

	// ErrUnsupportedPlatform 表示当前平台不支持此操作。
	ErrUnsupportedPlatform = errors.New("xfdlimit: unsupported platform")
)

// Step 标识一次提升操作中失败的系统调用步骤。
type Step string

// 失败步骤常量。sysctl 与 getrlimit 属于查询失败，setrlimit 属于安装失败。
const (
	StepSysctl    Step = "sysctl"
	StepGetrlimit Step = "getrlimit"
	StepSetrlimit Step = "setrlimit"
)

// StepError 携带失败步骤与操作系统原始错误的结构化错误。
//
// 通过 [errors.As] 可取出失败步骤，通过 [errors.Is] 可匹配被包装的
// 系统错误（如 syscall.EPERM）。
type StepError struct {
	Step Step  // 失败的系统调用步骤
	Err  error // 操作系统返回的原始错误
}

// Error 实现 error 接口。
func (e *StepError) Error() string {
	subject := "RLIMIT_NOFILE"
	if e.Step == StepSysctl {
		subject = kernMaxFilesPerProc
	}
	return fmt.Sprintf("xfdlimit: %s %s: %v", e.Step, subject, e.Err)
}

// Unwrap 返回被包装的操作系统错误。
func (e *StepError) Unwrap() error {
	return e.Err
}
