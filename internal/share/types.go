package share

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// MmolConversionFactor converts mg/dL to mmol/L.
const MmolConversionFactor = 0.0555

// Trend is the provider's rate-of-change code, 0 through 9.
type Trend int

const (
	TrendNone Trend = iota
	TrendDoubleUp
	TrendSingleUp
	TrendFortyFiveUp
	TrendFlat
	TrendFortyFiveDown
	TrendSingleDown
	TrendDoubleDown
	TrendNotComputable
	TrendRateOutOfRange
)

var trendDirections = map[string]Trend{
	"None":           TrendNone,
	"DoubleUp":       TrendDoubleUp,
	"SingleUp":       TrendSingleUp,
	"FortyFiveUp":    TrendFortyFiveUp,
	"Flat":           TrendFlat,
	"FortyFiveDown":  TrendFortyFiveDown,
	"SingleDown":     TrendSingleDown,
	"DoubleDown":     TrendDoubleDown,
	"NotComputable":  TrendNotComputable,
	"RateOutOfRange": TrendRateOutOfRange,
}

var trendDescriptions = [...]string{
	"",
	"rising quickly",
	"rising",
	"rising slightly",
	"steady",
	"falling slightly",
	"falling",
	"falling quickly",
	"unable to determine trend",
	"trend unavailable",
}

var trendArrows = [...]string{"", "↑↑", "↑", "↗", "→", "↘", "↓", "↓↓", "?", "-"}

func (t Trend) valid() bool {
	return t >= TrendNone && t <= TrendRateOutOfRange
}

// Description returns the human-readable trend, e.g. "steady".
func (t Trend) Description() string {
	if !t.valid() {
		return ""
	}
	return trendDescriptions[t]
}

// Arrow returns the trend glyph, e.g. "→".
func (t Trend) Arrow() string {
	if !t.valid() {
		return ""
	}
	return trendArrows[t]
}

// ParseTrend resolves a direction name to its code. Unknown names resolve to
// TrendNone; the provider's vocabulary may grow.
func ParseTrend(name string) Trend {
	return trendDirections[strings.TrimSpace(name)]
}

// RawReading mirrors one element of ReadPublisherLatestGlucoseValues.
type RawReading struct {
	WT    string          `json:"WT"`
	ST    string          `json:"ST"`
	DT    string          `json:"DT"`
	Value int             `json:"Value"`
	Trend json.RawMessage `json:"Trend"`
}

// GlucoseReading is a normalized reading.
type GlucoseReading struct {
	MgDL             int       `json:"mgdl"`
	MmolL            float64   `json:"mmol"`
	Trend            Trend     `json:"trend"`
	TrendDescription string    `json:"trendDescription"`
	TrendArrow       string    `json:"trendArrow"`
	Time             time.Time `json:"time"`
}

// Normalize converts a provider record into a GlucoseReading. It never fails:
// unrecognized trends become TrendNone and an unparsable timestamp becomes the
// zero time.
func Normalize(raw RawReading) GlucoseReading {
	trend := resolveTrend(raw.Trend)
	return GlucoseReading{
		MgDL:             raw.Value,
		MmolL:            ToMmol(raw.Value),
		Trend:            trend,
		TrendDescription: trend.Description(),
		TrendArrow:       trend.Arrow(),
		Time:             parseProviderTime(raw.WT),
	}
}

// ToMmol converts mg/dL to mmol/L rounded to one decimal place.
func ToMmol(mgdl int) float64 {
	return math.Round(float64(mgdl)*MmolConversionFactor*10) / 10
}

func resolveTrend(raw json.RawMessage) Trend {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return TrendNone
	}
	var code float64
	if err := json.Unmarshal(trimmed, &code); err == nil {
		t := Trend(code)
		if float64(t) != code || !t.valid() {
			return TrendNone
		}
		return t
	}
	var name string
	if err := json.Unmarshal(trimmed, &name); err == nil {
		return ParseTrend(name)
	}
	return TrendNone
}

// parseProviderTime extracts epoch milliseconds from values like
// "Date(1700000000000)" and truncates them to whole seconds.
func parseProviderTime(value string) time.Time {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
	if digits == "" {
		return time.Time{}
	}
	ms, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(ms/1000, 0).UTC()
}
