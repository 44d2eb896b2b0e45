package warapi

import (
	"fmt"
	"strings"
	"unicode"
)

// Faction labels used by the war API. The regiment plays Colonials, so
// Warden structures are the threat.
const (
	teamWardens   = "WARDENS"
	teamColonials = "COLONIALS"
)

// Summary is the derived verdict about Warden presence on a hex. It is
// recomputed on every successful fetch and cached as an immutable value.
type Summary struct {
	Threatened    bool     `json:"threatened"`
	WardenCount   int      `json:"wardenCount"`
	ColonialCount int      `json:"colonialCount"`
	Alerts        []string `json:"alerts"`
}

type mapItem struct {
	TeamID string `json:"teamId"`
}

type dynamicMapData struct {
	MapItems []mapItem `json:"mapItems"`
}

// parseThreats counts faction-tagged map items and builds the alert lines.
// Order of mapItems does not matter; items tagged neither faction are
// ignored.
func parseThreats(data *dynamicMapData, hexName string) Summary {
	if data == nil || data.MapItems == nil {
		return Summary{Alerts: []string{"No map data available."}}
	}

	var wardens, colonials int
	for _, item := range data.MapItems {
		switch item.TeamID {
		case teamWardens:
			wardens++
		case teamColonials:
			colonials++
		}
	}

	threatened := wardens > 0
	alerts := make([]string, 0, 2)
	if threatened {
		alerts = append(alerts, fmt.Sprintf("⚠ THREAT: %d Warden structure(s) detected in %s", wardens, FormatHexName(hexName)))
	} else {
		alerts = append(alerts, fmt.Sprintf("✓ No Warden presence detected in %s", FormatHexName(hexName)))
	}
	if colonials > 0 {
		alerts = append(alerts, fmt.Sprintf("Colonial structures present: %d", colonials))
	}

	return Summary{
		Threatened:    threatened,
		WardenCount:   wardens,
		ColonialCount: colonials,
		Alerts:        alerts,
	}
}

// FormatHexName renders a raw API hex name for humans: the trailing "Hex"
// suffix is dropped and a space is inserted at each lower-to-upper boundary,
// so "TheFingersHex" becomes "The Fingers".
func FormatHexName(hexName string) string {
	name := strings.TrimSuffix(hexName, "Hex")
	var b strings.Builder
	b.Grow(len(name) + 4)
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
