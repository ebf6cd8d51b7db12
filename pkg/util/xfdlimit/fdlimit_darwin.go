//go:build darwin

package xfdlimit

import "golang.org/x/sys/unix"

// sysctl 查询经包级变量间接引用，便于测试注入失败场景。
var sysctlUint32 = unix.SysctlUint32

// kernelCeiling 读取内核公布的单进程最大打开文件数上限。
// 每次调用重新读取，不做缓存。
func kernelCeiling() (uint64, error) {
	ceiling, err := sysctlUint32(kernMaxFilesPerProc)
	if err != nil {
		return 0, &StepError{Step: StepSysctl, Err: err}
	}
	return uint64(ceiling), nil
}

// raiseFDLimit 将 soft limit 提升到 min(内核上限, hard limit)。
// 超过 hard limit 的请求会被内核拒绝；hard limit 名义上允许更高时，
// 也不越过内核公布的单进程上限。
func raiseFDLimit() (Outcome, error) {
	ceiling, err := kernelCeiling()
	if err != nil {
		return Outcome{}, err
	}
	_, hard, err := currentFDLimit()
	if err != nil {
		return Outcome{}, err
	}
	newSoft := min(ceiling, hard)
	if err := installSoftLimit(newSoft, hard); err != nil {
		return Outcome{}, err
	}
	return Outcome{Limit: newSoft, Supported: true}, nil
}

// maximumFDLimit 返回 min(内核上限, hard limit)。
func maximumFDLimit() (uint64, error) {
	ceiling, err := kernelCeiling()
	if err != nil {
		return 0, err
	}
	_, hard, err := currentFDLimit()
	if err != nil {
		return 0, err
	}
	return min(ceiling, hard), nil
}
