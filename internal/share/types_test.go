package share

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Example(t *testing.T) {
	got := Normalize(RawReading{Value: 145, Trend: json.RawMessage(`"Flat"`), WT: "Date(1700000000000)"})

	assert.Equal(t, GlucoseReading{
		MgDL:             145,
		MmolL:            8.0,
		Trend:            TrendFlat,
		TrendDescription: "steady",
		TrendArrow:       "→",
		Time:             time.UnixMilli(1700000000000).UTC(),
	}, got)
	assert.Equal(t, time.UTC, got.Time.Location())
}

func TestToMmol_RoundsToOneDecimal(t *testing.T) {
	for mgdl := 0; mgdl <= 600; mgdl++ {
		want := math.Round(float64(mgdl)*0.0555*10) / 10
		if got := ToMmol(mgdl); got != want {
			t.Fatalf("ToMmol(%d) = %v, want %v", mgdl, got, want)
		}
	}
	assert.Equal(t, 10.0, ToMmol(180))
	assert.Equal(t, 3.9, ToMmol(70))
}

func TestNormalize_TrendVocabulary(t *testing.T) {
	tests := []struct {
		name  string
		trend string
		code  Trend
		desc  string
		arrow string
	}{
		{"None", `"None"`, 0, "", ""},
		{"DoubleUp", `"DoubleUp"`, 1, "rising quickly", "↑↑"},
		{"SingleUp", `"SingleUp"`, 2, "rising", "↑"},
		{"FortyFiveUp", `"FortyFiveUp"`, 3, "rising slightly", "↗"},
		{"Flat", `"Flat"`, 4, "steady", "→"},
		{"FortyFiveDown", `"FortyFiveDown"`, 5, "falling slightly", "↘"},
		{"SingleDown", `"SingleDown"`, 6, "falling", "↓"},
		{"DoubleDown", `"DoubleDown"`, 7, "falling quickly", "↓↓"},
		{"NotComputable", `"NotComputable"`, 8, "unable to determine trend", "?"},
		{"RateOutOfRange", `"RateOutOfRange"`, 9, "trend unavailable", "-"},
		{"numeric code", `6`, 6, "falling", "↓"},
		{"unknown name", `"Sideways"`, 0, "", ""},
		{"out of range code", `12`, 0, "", ""},
		{"negative code", `-1`, 0, "", ""},
		{"fractional code", `4.5`, 0, "", ""},
		{"null", `null`, 0, "", ""},
		{"missing", ``, 0, "", ""},
		{"object", `{"x":1}`, 0, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawReading{Value: 100, Trend: json.RawMessage(tt.trend), WT: "Date(1700000000000)"}
			first := Normalize(raw)
			second := Normalize(raw)
			assert.Equal(t, first, second)
			assert.Equal(t, tt.code, first.Trend)
			assert.Equal(t, tt.desc, first.TrendDescription)
			assert.Equal(t, tt.arrow, first.TrendArrow)
		})
	}
}

func TestNormalize_DecodesProviderJSON(t *testing.T) {
	var raws []RawReading
	err := json.Unmarshal([]byte(`[
		{"WT":"Date(1700000123456)","ST":"Date(1700000123456)","DT":"Date(1700000123456-0500)","Value":98,"Trend":"SingleDown"},
		{"WT":"Date(1700000000000)","Value":101,"Trend":4}
	]`), &raws)
	assert.NoError(t, err)
	assert.Len(t, raws, 2)

	first := Normalize(raws[0])
	assert.Equal(t, TrendSingleDown, first.Trend)
	assert.Equal(t, time.Unix(1700000123, 0).UTC(), first.Time, "milliseconds truncate to seconds")
	assert.Equal(t, 5.4, first.MmolL)

	second := Normalize(raws[1])
	assert.Equal(t, TrendFlat, second.Trend)
}

func TestParseProviderTime(t *testing.T) {
	assert.True(t, parseProviderTime("").IsZero())
	assert.True(t, parseProviderTime("Date()").IsZero())
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), parseProviderTime("/Date(1700000000000)/"))
}

func TestParseTrend(t *testing.T) {
	assert.Equal(t, TrendDoubleDown, ParseTrend("DoubleDown"))
	assert.Equal(t, TrendNone, ParseTrend("doubledown"))
	assert.Equal(t, "", Trend(42).Arrow())
	assert.Equal(t, "", Trend(-3).Description())
}
