//go:build !darwin && !linux

package xfdlimit

// raiseFDLimit 在没有已知提升策略的平台上是显式 no-op：
// 不触碰任何操作系统限制状态，返回 Supported 为 false 的 [Outcome] 而非错误。
func raiseFDLimit() (Outcome, error) {
	return Outcome{}, nil
}

// raiseFDLimitTo 在不支持的平台上返回 [ErrUnsupportedPlatform]。
func raiseFDLimitTo(_ uint64) (uint64, error) {
	return 0, ErrUnsupportedPlatform
}

// currentFDLimit 在不支持的平台上返回 [ErrUnsupportedPlatform]。
func currentFDLimit() (soft, hard uint64, err error) {
	return 0, 0, ErrUnsupportedPlatform
}

// maximumFDLimit 在不支持的平台上返回 [ErrUnsupportedPlatform]。
func maximumFDLimit() (uint64, error) {
	return 0, ErrUnsupportedPlatform
}
