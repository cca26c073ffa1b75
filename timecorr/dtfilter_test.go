package timecorr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func days(dates ...string) []time.Time {
	ts := make([]time.Time, len(dates))
	for i, d := range dates {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			panic(err)
		}
		ts[i] = t
	}
	return ts
}

func TestFilterForward(t *testing.T) {
	tests := []struct {
		name        string
		input       []time.Time
		wantKeep    []bool
		wantRemoved int
	}{
		{
			name:        "already increasing",
			input:       days("2022-10-28", "2022-10-29", "2022-10-30"),
			wantKeep:    []bool{true, true, true},
			wantRemoved: 0,
		},
		{
			name:        "clock set back keeps earliest",
			input:       days("2022-10-30", "2022-10-28", "2022-10-29"),
			wantKeep:    []bool{true, false, false},
			wantRemoved: 2,
		},
		{
			name:        "single backstep",
			input:       days("2022-10-28", "2022-10-30", "2022-10-29"),
			wantKeep:    []bool{true, true, false},
			wantRemoved: 1,
		},
		{
			name:        "duplicates dropped",
			input:       days("2022-10-29", "2022-10-30", "2022-10-28", "2022-10-30"),
			wantKeep:    []bool{true, true, false, false},
			wantRemoved: 2,
		},
		{
			name:        "empty",
			input:       nil,
			wantKeep:    []bool{},
			wantRemoved: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keep, removed := FilterForward(tt.input)
			require.Equal(t, tt.wantKeep, keep)
			require.Equal(t, tt.wantRemoved, removed)
		})
	}
}

func TestFilterBackward(t *testing.T) {
	tests := []struct {
		name        string
		input       []time.Time
		wantKeep    []bool
		wantRemoved int
	}{
		{
			name:        "already increasing",
			input:       days("2022-10-28", "2022-10-29", "2022-10-30"),
			wantKeep:    []bool{true, true, true},
			wantRemoved: 0,
		},
		{
			name:        "clock set back keeps latest",
			input:       days("2022-10-30", "2022-10-28", "2022-10-29"),
			wantKeep:    []bool{false, true, true},
			wantRemoved: 1,
		},
		{
			name:        "trailing backstep",
			input:       days("2022-10-28", "2022-10-30", "2022-10-29"),
			wantKeep:    []bool{true, false, true},
			wantRemoved: 1,
		},
		{
			name:        "duplicates dropped",
			input:       days("2022-10-29", "2022-10-30", "2022-10-28", "2022-10-30"),
			wantKeep:    []bool{false, false, true, true},
			wantRemoved: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keep, removed := FilterBackward(tt.input)
			require.Equal(t, tt.wantKeep, keep)
			require.Equal(t, tt.wantRemoved, removed)
		})
	}
}
