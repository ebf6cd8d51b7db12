//go:build !darwin && !linux

package xfdlimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaise_NotApplicable(t *testing.T) {
	// 没有已知提升策略的平台上，Raise 是显式 no-op 而非错误。
	out, err := Raise()
	require.NoError(t, err)
	assert.False(t, out.Supported)
	assert.Equal(t, uint64(0), out.Limit)
}

func TestRaiseTo_UnsupportedPlatform(t *testing.T) {
	_, err := RaiseTo(1024)
	require.ErrorIs(t, err, ErrUnsupportedPlatform)
}

func TestCurrent_UnsupportedPlatform(t *testing.T) {
	soft, hard, err := Current()
	require.ErrorIs(t, err, ErrUnsupportedPlatform)
	assert.Equal(t, uint64(0), soft)
	assert.Equal(t, uint64(0), hard)
}

func TestMaximum_UnsupportedPlatform(t *testing.T) {
	m, err := Maximum()
	require.ErrorIs(t, err, ErrUnsupportedPlatform)
	assert.Equal(t, uint64(0), m)
}
