package alert

// Band is a display range for a glucose value in mg/dL.
type Band int

const (
	BandUnder70 Band = iota // ≤ 70
	BandUnder80             // 71–80
	BandInRange             // 81–159
	BandOver160             // 160–179
	BandOver180             // 180–249
	BandOver250             // 250–299
	BandOver300             // ≥ 300
)

// BandFor classifies a value.
func BandFor(mgdl int) Band {
	switch {
	case mgdl <= 70:
		return BandUnder70
	case mgdl <= 80:
		return BandUnder80
	case mgdl < 160:
		return BandInRange
	case mgdl < 180:
		return BandOver160
	case mgdl < 250:
		return BandOver180
	case mgdl < 300:
		return BandOver250
	default:
		return BandOver300
	}
}

func (b Band) String() string {
	switch b {
	case BandUnder70:
		return "under70"
	case BandUnder80:
		return "under80"
	case BandInRange:
		return "good"
	case BandOver160:
		return "over160"
	case BandOver180:
		return "over180"
	case BandOver250:
		return "over250"
	case BandOver300:
		return "over300"
	default:
		return "unknown"
	}
}
