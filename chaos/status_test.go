package chaos

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegionFor(t *testing.T) {
	cases := []struct {
		status ConnectionStatus
		region ServerRegion
	}{
		{StatusOnline, RegionPrimary},
		{StatusDegraded, RegionBackup},
		{StatusOffline, RegionEdge},
	}

	for _, tc := range cases {
		c := NewController(StatusOnline)
		c.SetStatus(tc.status)
		require.Equal(t, tc.status, c.Status())
		require.Equal(t, tc.region, c.Region(), "region for %s", tc.status)
	}
}

func TestController_SetStatusReturnsPrevious(t *testing.T) {
	c := NewController(ConnectionStatus{})
	require.Equal(t, StatusOnline, c.Status(), "zero initial status starts ONLINE")

	prev := c.SetStatus(StatusOffline)
	require.Equal(t, StatusOnline, prev)
	prev = c.SetStatus(StatusDegraded)
	require.Equal(t, StatusOffline, prev)
	require.Equal(t, RegionBackup, c.Region())

	prev = c.SetStatus(ConnectionStatus{})
	require.Equal(t, StatusDegraded, prev)
	require.Equal(t, StatusDegraded, c.Status(), "zero status is ignored")
	require.Equal(t, RegionBackup, c.Region())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" offline ")
	require.NoError(t, err)
	require.Equal(t, StatusOffline, s)

	_, err = ParseStatus("flaky")
	require.ErrorIs(t, err, ErrUnknownStatus)

	var decoded struct {
		Status ConnectionStatus `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"degraded"}`), &decoded))
	require.Equal(t, StatusDegraded, decoded.Status)
	require.Error(t, json.Unmarshal([]byte(`{"status":"nope"}`), &decoded))
}

func TestRegionDisplayName(t *testing.T) {
	require.Equal(t, "AWS Tokyo (Backup)", RegionBackup.DisplayName(LocaleEN))
	require.Equal(t, "Edge CDN (Bộ nhớ đệm)", RegionEdge.DisplayName(LocaleVI))
	require.Equal(t, "AWS Singapore (Primary)", RegionPrimary.DisplayName("fr"), "unknown locale falls back to English")
}
