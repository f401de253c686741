package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crewline/crewline/internal/db/models"
)

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }

func TestParseStamp(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "rfc3339", raw: "2026-03-01T09:30:00Z"},
		{name: "offset naive with T", raw: "2026-03-01T09:30:00"},
		{name: "offset naive with space", raw: "2026-03-01 09:30:00"},
		{name: "no seconds", raw: "2026-03-01 09:30"},
		{name: "surrounding whitespace", raw: "  2026-03-01 09:30:00  "},
		{name: "garbage", raw: "not a time", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseStamp(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, 2026, parsed.Year())
			require.Equal(t, time.March, parsed.Month())
			require.Equal(t, 9, parsed.Hour())
		})
	}
}

func TestParseStampSeparatorEquivalence(t *testing.T) {
	withSpace, err := ParseStamp("2026-03-01 09:30:00")
	require.NoError(t, err)
	withT, err := ParseStamp("2026-03-01T09:30:00")
	require.NoError(t, err)
	require.True(t, withSpace.Equal(withT))
}

func TestElapsedSession(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)

	t.Run("nil stamp is zero", func(t *testing.T) {
		require.Equal(t, time.Duration(0), ElapsedSession(nil, now))
	})

	t.Run("empty stamp is zero", func(t *testing.T) {
		require.Equal(t, time.Duration(0), ElapsedSession(strPtr("  "), now))
	})

	t.Run("malformed stamp degrades to zero", func(t *testing.T) {
		require.Equal(t, time.Duration(0), ElapsedSession(strPtr("yesterday-ish"), now))
	})

	t.Run("running timer", func(t *testing.T) {
		require.Equal(t, 90*time.Minute, ElapsedSession(strPtr("2026-03-01 10:30:00"), now))
	})

	t.Run("future stamp clamps to zero", func(t *testing.T) {
		require.Equal(t, time.Duration(0), ElapsedSession(strPtr("2026-03-01 13:00:00"), now))
	})
}

func TestTotalUsed(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)

	t.Run("no timer returns baseline", func(t *testing.T) {
		require.Equal(t, 10.0, TotalUsed(10, nil, now))
	})

	t.Run("exactly one hour elapsed", func(t *testing.T) {
		start := now.Add(-time.Hour).Format("2006-01-02 15:04:05")
		require.InDelta(t, 11.0, TotalUsed(10, &start, now), 1e-9)
	})

	t.Run("negative baseline clamps to zero", func(t *testing.T) {
		require.Equal(t, 0.0, TotalUsed(-4, nil, now))
	})
}

func TestParentHoursRollup(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)

	parent := models.Project{Status: models.ProjectStatusStarted, AllocatedHours: 999, UsedHours: 999}
	parent.ID = 1
	childA := models.Project{ParentID: uintPtr(1), AllocatedHours: 40, UsedHours: 12}
	childA.ID = 2
	childB := models.Project{ParentID: uintPtr(1), AllocatedHours: 60, UsedHours: 20,
		TimerStartTime: strPtr(now.Add(-30 * time.Minute).Format("2006-01-02 15:04:05"))}
	childB.ID = 3
	all := []models.Project{parent, childA, childB}

	// The parent's own stored fields must not leak into the rollup.
	require.Equal(t, 100.0, AllocatedHours(&parent, all))
	require.InDelta(t, 32.5, UsedHours(&parent, all, now), 1e-9)

	// A standalone project reads its own fields.
	require.Equal(t, 40.0, AllocatedHours(&childA, all))
	require.Equal(t, 12.0, UsedHours(&childA, all, now))
}
