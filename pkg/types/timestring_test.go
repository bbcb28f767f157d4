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
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "09:30", want: "09:30"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid end of day", input: "23:59", want: "23:59"},
		{name: "missing leading zero", input: "9:30", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "out of range minute", input: "10:60", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
		wantErr bool
	}{
		{name: "within hour", start: "10:00", minutes: 30, want: "10:30"},
		{name: "across hour", start: "10:45", minutes: 30, want: "11:15"},
		{name: "several hours", start: "09:00", minutes: 480, want: "17:00"},
		{name: "negative shift", start: "10:00", minutes: -60, want: "09:00"},
		{name: "past midnight", start: "23:30", minutes: 60, wantErr: true},
		{name: "before day start", start: "00:30", minutes: -60, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("17:00").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("09:00"))
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("01:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 90, m)

	_, err = TimeString("bad").Minutes()
	require.Error(t, err)
}

func TestTimeString_Format12Hour(t *testing.T) {
	assert.Equal(t, "2:30 PM", TimeString("14:30").Format12Hour())
	assert.Equal(t, "9:00 AM", TimeString("09:00").Format12Hour())
	assert.Equal(t, "12:00 PM", TimeString("12:00").Format12Hour())
	assert.Equal(t, "12:05 AM", TimeString("00:05").Format12Hour())
	// Некорректное значение возвращается как есть
	assert.Equal(t, "oops", TimeString("oops").Format12Hour())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, TimeString("10:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:15")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 10, 15, 16, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("16:45"), ts)

	require.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:30", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("nope").Value()
	require.Error(t, err)
}
