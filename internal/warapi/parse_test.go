package warapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseThreatsWardensPresent(t *testing.T) {
	data := &dynamicMapData{MapItems: []mapItem{
		{TeamID: "WARDENS"},
		{TeamID: "WARDENS"},
		{TeamID: "COLONIALS"},
		{TeamID: "WARDENS"},
		{TeamID: "NONE"},
	}}
	s := parseThreats(data, "DeadLandsHex")

	assert.True(t, s.Threatened)
	assert.Equal(t, 3, s.WardenCount)
	assert.Equal(t, 1, s.ColonialCount)
	require.Len(t, s.Alerts, 2)
	assert.Equal(t, "⚠ THREAT: 3 Warden structure(s) detected in Dead Lands", s.Alerts[0])
	assert.Equal(t, "Colonial structures present: 1", s.Alerts[1])
}

func TestParseThreatsNoWardens(t *testing.T) {
	data := &dynamicMapData{MapItems: []mapItem{
		{TeamID: "COLONIALS"},
		{TeamID: "COLONIALS"},
	}}
	s := parseThreats(data, "TheFingersHex")

	assert.False(t, s.Threatened)
	assert.Equal(t, 0, s.WardenCount)
	assert.Equal(t, 2, s.ColonialCount)
	require.Len(t, s.Alerts, 2)
	assert.Equal(t, "✓ No Warden presence detected in The Fingers", s.Alerts[0])
}

func TestParseThreatsEmptyMap(t *testing.T) {
	s := parseThreats(&dynamicMapData{MapItems: []mapItem{}}, "OarbreakerHex")

	assert.False(t, s.Threatened)
	require.Len(t, s.Alerts, 1)
	assert.Equal(t, "✓ No Warden presence detected in Oarbreaker", s.Alerts[0])
}

func TestParseThreatsNoData(t *testing.T) {
	for _, data := range []*dynamicMapData{nil, {MapItems: nil}} {
		s := parseThreats(data, "DeadLandsHex")
		assert.False(t, s.Threatened)
		assert.Equal(t, []string{"No map data available."}, s.Alerts)
	}
}

func TestFormatHexName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"TheFingersHex", "The Fingers"},
		{"DeadLandsHex", "Dead Lands"},
		{"OarbreakerHex", "Oarbreaker"},
		{"MarbanHollow", "Marban Hollow"},
		{"Hex", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatHexName(tt.in), "input %q", tt.in)
	}
}

func TestParseMaxAge(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"public, max-age=120", "2m0s"},
		{"max-age=0", "0s"},
		{"", "1m0s"},
		{"no-store", "1m0s"},
		{"max-age=banana", "1m0s"},
		{"max-age=-5", "1m0s"},
		{"max-age=999999999", "24h0m0s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseMaxAge(tt.header).String(), "header %q", tt.header)
	}
}
