package xfdlimit

// Outcome 描述一次 [Raise] 调用的结果。
//
// 没有已知提升策略的平台上 Supported 为 false，这是一种显式的
// "无需处理" 成功，与失败严格区分。
type Outcome struct {
	// Limit 为本次调用安装的 soft limit，仅当 Supported 为 true 时有意义。
	Limit uint64

	// Supported 表示当前平台是否存在可用的提升策略。
	Supported bool
}

// Raise 将进程 RLIMIT_NOFILE 的 soft limit 提升到操作系统允许的最大值，
// 返回安装后的值。通常在进程启动时调用一次，之后的高并发负载
// （大量 socket、文件、管道同时打开）不再受默认 soft limit 制约。
//
// 操作幂等：可重复调用，重复调用不会降低 soft limit。每次调用都重新执行
// 底层系统调用，(soft, hard) 与内核上限均即查即用，不跨调用缓存。
//
// 设计决策: 本操作不加内部锁。单个系统调用由内核保证原子性，但
// 查询-计算-安装的多步序列整体不具备事务性，并发调用会在进程级共享的
// rlimit 状态上竞争。需要严格确定性的调用方应在启动阶段、派生其他
// goroutine 之前单线程调用一次。
//
// 失败时返回 [StepError]；不支持的平台不报错，返回 Supported 为
// false 的 [Outcome]。
func Raise() (Outcome, error) {
	return raiseFDLimit()
}

// RaiseTo 将 soft limit 向 target 提升，返回调用结束后生效的 soft limit。
//
// 目标自动收敛到可达上限（见 [Maximum]），超出上限的请求不会触发系统调用
// 失败；现值已满足目标时直接返回现值，不执行安装调用，因此绝不降低 soft limit。
//
// target 为零返回 [ErrInvalidLimit]；不支持的平台返回 [ErrUnsupportedPlatform]。
func RaiseTo(target uint64) (uint64, error) {
	if err := validateRaiseTarget(target); err != nil {
		return 0, err
	}
	return raiseFDLimitTo(target)
}

// Current 查询进程当前 RLIMIT_NOFILE 的 (soft, hard) 值。
// 每次调用直接读取操作系统状态，不做缓存。
// 不支持的平台返回 [ErrUnsupportedPlatform]。
func Current() (soft, hard uint64, err error) {
	return currentFDLimit()
}

// Maximum 查询后续 [Raise] 能安装的最大 soft limit：
// Darwin 上为 min(内核上限, hard limit)，Linux 上为 hard limit。
// 不支持的平台返回 [ErrUnsupportedPlatform]。
func Maximum() (uint64, error) {
	return maximumFDLimit()
}

// validateRaiseTarget 校验提升目标的有效性。
// 跨平台共享校验逻辑，所有平台行为一致。
func validateRaiseTarget(target uint64) error {
	if target == 0 {
		return ErrInvalidLimit
	}
	return nil
}

// clampRaise 计算向 target 提升时实际应安装的 soft limit。
// 目标收敛到可达上限 achievable；返回新的 soft limit 以及是否需要
// 执行安装调用，现值 soft 已满足收敛后的目标时无需安装。
func clampRaise(target, achievable, soft uint64) (newSoft uint64, install bool) {
	newSoft = min(target, achievable)
	if soft >= newSoft {
		return soft, false
	}
	return newSoft, true
}
