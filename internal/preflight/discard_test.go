package preflight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMounts = `sysfs /sys sysfs rw,nosuid,nodev,noexec 0 0
/dev/nvme0n1p2 / ext4 rw,relatime 0 0
/dev/nvme0n1p3 /data ext4 rw,relatime,discard 0 0
/dev/sda1 /data/archive xfs rw,noatime 0 0
tmpfs /tmp tmpfs rw,nosuid,nodev 0 0
`

func TestDiscardActiveInMatchesHoldingMount(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/home/user/secrets", false},
		{"/data", true},
		{"/data/projects/x", true},
		{"/data/archive/old", false}, // nested mount without discard wins
		{"/tmp/scratch", false},
	}
	for _, tc := range tests {
		got, err := discardActiveIn(strings.NewReader(sampleMounts), tc.path)
		require.NoError(t, err, tc.path)
		assert.Equal(t, tc.want, got, tc.path)
	}
}

func TestDiscardActiveInIgnoresMalformedLines(t *testing.T) {
	table := "garbage\n\n/dev/sdb1 /mnt ext4 rw,discard 0 0\nshort line\n"
	got, err := discardActiveIn(strings.NewReader(table), "/mnt/x")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestDiscardActiveInMatchesOptionExactly(t *testing.T) {
	// "nodiscard" or "discardfoo" must not count as discard.
	table := "/dev/sdb1 /mnt ext4 rw,nodiscard,discardish 0 0\n"
	got, err := discardActiveIn(strings.NewReader(table), "/mnt/x")
	require.NoError(t, err)
	assert.False(t, got)

	table = "/dev/sdb1 /mnt ext4 rw,discard=async 0 0\n"
	got, err = discardActiveIn(strings.NewReader(table), "/mnt/x")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestDiscardActiveInEmptyTable(t *testing.T) {
	got, err := discardActiveIn(strings.NewReader(""), "/anything")
	require.NoError(t, err)
	assert.False(t, got)
}
