package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo_Defaults(t *testing.T) {
	got := Info()
	assert.Equal(t, "reviewsense-api", got.Service)
	assert.NotEmpty(t, got.Version)
	assert.NotEmpty(t, got.Commit)
	assert.NotEmpty(t, got.Date)
	assert.NotEmpty(t, got.Go)
}

func TestCollect(t *testing.T) {
	vcs := func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-03-01T09:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		}}, true
	}

	got := collect("dev", "", "", vcs)
	assert.Equal(t, "0123456789ab", got.Commit)
	assert.Equal(t, "2026-03-01T09:00:00Z", got.Date)
	assert.True(t, got.Dirty)

	stamped := collect("v1.2.0", "feedbee", "2026-04-01", vcs)
	assert.Equal(t, "v1.2.0", stamped.Version)
	assert.Equal(t, "feedbee", stamped.Commit)
	assert.Equal(t, "2026-04-01", stamped.Date)

	none := collect("dev", "", "", func() (*debug.BuildInfo, bool) { return nil, false })
	assert.Equal(t, "none", none.Commit)
	assert.Equal(t, "unknown", none.Date)
	assert.False(t, none.Dirty)
}
