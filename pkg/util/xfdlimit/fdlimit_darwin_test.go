//go:build darwin

package xfdlimit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// 不可 t.Parallel()：读取进程 rlimit 全局状态，与修改 rlimit 的测试互斥。
func TestKernelCeiling(t *testing.T) {
	ceiling, err := kernelCeiling()
	require.NoError(t, err)
	assert.Greater(t, ceiling, uint64(0))
}

// 不可 t.Parallel()：替换包级系统调用变量。
func TestRaise_CeilingClampedByHard(t *testing.T) {
	origSysctl := sysctlUint32
	origGet := getrlimit
	origSet := setrlimit
	defer func() {
		sysctlUint32 = origSysctl
		getrlimit = origGet
		setrlimit = origSet
	}()

	sysctlUint32 = func(_ string) (uint32, error) {
		return 10240, nil
	}
	getrlimit = func(_ int, rlim *unix.Rlimit) error {
		rlim.Cur = 256
		rlim.Max = 4096
		return nil
	}
	var installed unix.Rlimit
	setrlimit = func(_ int, rlim *unix.Rlimit) error {
		installed = *rlim
		return nil
	}

	out, err := Raise()
	require.NoError(t, err)
	assert.True(t, out.Supported)
	assert.Equal(t, uint64(4096), out.Limit)

	// 安装的是 (min(内核上限, hard), 原 hard)。
	assert.Equal(t, unix.Rlimit{Cur: 4096, Max: 4096}, installed)
}

// 不可 t.Parallel()：替换包级系统调用变量。
func TestRaise_HardUnlimited(t *testing.T) {
	origSysctl := sysctlUint32
	origGet := getrlimit
	origSet := setrlimit
	defer func() {
		sysctlUint32 = origSysctl
		getrlimit = origGet
		setrlimit = origSet
	}()

	sysctlUint32 = func(_ string) (uint32, error) {
		return 10240, nil
	}
	getrlimit = func(_ int, rlim *unix.Rlimit) error {
		rlim.Cur = 256
		rlim.Max = unix.RLIM_INFINITY
		return nil
	}
	var installed unix.Rlimit
	setrlimit = func(_ int, rlim *unix.Rlimit) error {
		installed = *rlim
		return nil
	}

	// hard 为 "unlimited" 哨兵值时，内核上限生效。
	out, err := Raise()
	require.NoError(t, err)
	assert.Equal(t, uint64(10240), out.Limit)
	assert.Equal(t, unix.Rlimit{Cur: 10240, Max: unix.RLIM_INFINITY}, installed)
}

// 不可 t.Parallel()：替换包级系统调用变量。
func TestRaise_SysctlError(t *testing.T) {
	origSysctl := sysctlUint32
	origGet := getrlimit
	origSet := setrlimit
	defer func() {
		sysctlUint32 = origSysctl
		getrlimit = origGet
		setrlimit = origSet
	}()

	mockErr := errors.New("mock sysctl error")
	sysctlUint32 = func(_ string) (uint32, error) {
		return 0, mockErr
	}
	var queried, installCalled bool
	getrlimit = func(_ int, _ *unix.Rlimit) error {
		queried = true
		return nil
	}
	setrlimit = func(_ int, _ *unix.Rlimit) error {
		installCalled = true
		return nil
	}

	_, err := Raise()
	require.ErrorIs(t, err, mockErr)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepSysctl, stepErr.Step)

	// 查询失败后不得再执行后续系统调用。
	assert.False(t, queried)
	assert.False(t, installCalled)
}

// 不可 t.Parallel()：替换包级系统调用变量。
func TestMaximum_CeilingClamps(t *testing.T) {
	origSysctl := sysctlUint32
	origGet := getrlimit
	defer func() {
		sysctlUint32 = origSysctl
		getrlimit = origGet
	}()

	tests := []struct {
		name    string
		ceiling uint32
		hard    uint64
		want    uint64
	}{
		{
			name:    "hard_below_ceiling",
			ceiling: 10240,
			hard:    4096,
			want:    4096,
		},
		{
			name:    "ceiling_below_hard",
			ceiling: 10240,
			hard:    1 << 20,
			want:    10240,
		},
		{
			name:    "hard_unlimited",
			ceiling: 10240,
			hard:    unix.RLIM_INFINITY,
			want:    10240,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sysctlUint32 = func(_ string) (uint32, error) {
				return tt.ceiling, nil
			}
			getrlimit = func(_ int, rlim *unix.Rlimit) error {
				rlim.Cur = 256
				rlim.Max = tt.hard
				return nil
			}

			got, err := Maximum()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
