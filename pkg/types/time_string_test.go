package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "morning", input: "10:00"},
		{name: "midnight", input: "00:00"},
		{name: "last minute", input: "23:59"},
		{name: "no leading zero", input: "9:00", wantErr: true},
		{name: "hour overflow", input: "24:00", wantErr: true},
		{name: "with seconds", input: "10:00:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("18:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 18*60+30, m)

	assert.True(t, TimeString("09:00").IsBefore("18:30"))
	assert.Equal(t, TimeString("07:05"), NewTimeString(time.Date(2025, 1, 1, 7, 5, 0, 0, time.UTC)))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("12:15")))
	assert.Equal(t, TimeString("12:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
