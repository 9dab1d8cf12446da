package steamfiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateFlagsDecoding(t *testing.T) {
	for _, tc := range []struct {
		packed StateFlags
		want   []StateFlag
	}{
		{0, []StateFlag{FlagInvalid}},
		{4, []StateFlag{FlagFullyInstalled}},
		{2, []StateFlag{FlagUpdateRequired}},
		{6, []StateFlag{FlagUpdateRequired, FlagFullyInstalled}},
		{1, []StateFlag{FlagUninstalled}},
		// Steam occasionally sets bits outside the documented table.
		{1 << 14, []StateFlag{StateFlag(14)}},
		{1 << 30, []StateFlag{StateFlag(30)}},
		{4 | 1<<20 | 1<<30,
			[]StateFlag{FlagFullyInstalled, FlagDownloading, StateFlag(30)}},
		{1 << 63, []StateFlag{StateFlag(63)}},
	} {
		assert.Equal(t, tc.want, tc.packed.All(), "packed value %d", tc.packed)
	}
}

func TestStateFlagsZeroYieldsInvalidExactlyOnce(t *testing.T) {
	it := StateFlags(0).Flags()
	f, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, FlagInvalid, f)
	_, ok = it.Next()
	assert.False(t, ok)
	_, ok = it.Next()
	assert.False(t, ok, "an exhausted iterator must stay exhausted")
}

func TestStateFlagsIterIsRestartable(t *testing.T) {
	s := StateFlags(6)

	it := s.Flags()
	f, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, FlagUpdateRequired, f)
	// Abandon it and start over.
	assert.Equal(t, []StateFlag{FlagUpdateRequired, FlagFullyInstalled}, s.All())
}

func TestStateFlagNames(t *testing.T) {
	assert.Equal(t, "Invalid", FlagInvalid.String())
	assert.Equal(t, "FullyInstalled", FlagFullyInstalled.String())
	assert.Equal(t, "UpdateStopping", FlagUpdateStopping.String())
	assert.True(t, FlagBackupRunning.Known())

	// 13-15 sit in the gap between the named ranges; 24 and up are past
	// the table.
	for _, f := range []StateFlag{13, 14, 15, 24, 63} {
		assert.False(t, f.Known(), "offset %d", f)
	}
	assert.Equal(t, "Unknown(14)", StateFlag(14).String())
	assert.Equal(t, "Unknown(24)", StateFlag(24).String())
}
