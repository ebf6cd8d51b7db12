//go:build linux

package xfdlimit

// raiseFDLimit 将 soft limit 提升到 hard limit。
// Linux 没有独立的内核上限概念，hard limit 即可达上限。
func raiseFDLimit() (Outcome, error) {
	_, hard, err := currentFDLimit()
	if err != nil {
		return Outcome{}, err
	}
	if err := installSoftLimit(hard, hard); err != nil {
		return Outcome{}, err
	}
	return Outcome{Limit: hard, Supported: true}, nil
}

// maximumFDLimit 返回 hard limit。
func maximumFDLimit() (uint64, error) {
	_, hard, err := currentFDLimit()
	if err != nil {
		return 0, err
	}
	return hard, nil
}
