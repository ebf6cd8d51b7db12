//go:build darwin || linux

package xfdlimit

import (
	"golang.org/x/sys/unix"
)

// 系统调用经包级变量间接引用，便于测试注入失败场景。
var (
	getrlimit = unix.Getrlimit
	setrlimit = unix.Setrlimit
)

// currentFDLimit 查询当前 RLIMIT_NOFILE 的 (soft, hard)。
func currentFDLimit() (soft, hard uint64, err error) {
	var rlim unix.Rlimit
	if err := getrlimit(unix.RLIMIT_NOFILE, &rlim); err != nil {
		return 0, 0, &StepError{Step: StepGetrlimit, Err: err}
	}
	return rlim.Cur, rlim.Max, nil
}

// installSoftLimit 安装新的 soft limit，hard limit 原样传回，永不改动。
func installSoftLimit(soft, hard uint64) error {
	rlim := unix.Rlimit{Cur: soft, Max: hard}
	if err := setrlimit(unix.RLIMIT_NOFILE, &rlim); err != nil {
		return &StepError{Step: StepSetrlimit, Err: err}
	}
	return nil
}

// raiseFDLimitTo 在可达上限内将 soft limit 向 target 提升。
func raiseFDLimitTo(target uint64) (uint64, error) {
	achievable, err := maximumFDLimit()
	if err != nil {
		return 0, err
	}
	soft, hard, err := currentFDLimit()
	if err != nil {
		return 0, err
	}
	newSoft, install := clampRaise(target, achievable, soft)
	if !install {
		return newSoft, nil
	}
	if err := installSoftLimit(newSoft, hard); err != nil {
		return 0, err
	}
	return newSoft, nil
}
