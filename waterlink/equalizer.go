package waterlink

// NumBands is the number of equalizer bands the node exposes.
const NumBands = 15

// Gain bounds accepted by the node.
const (
	MinGain = -0.25
	MaxGain = 1.0
)

// BandGain is one equalizer adjustment: a band index in [0, NumBands) and
// a gain in [MinGain, MaxGain].
type BandGain struct {
	Band int     `json:"band"`
	Gain float64 `json:"gain"`
}

// BassboostLevel names one step of the builtin bassboost preset table.
type BassboostLevel string

const (
	BassboostOff    BassboostLevel = "off"
	BassboostLow    BassboostLevel = "low"
	BassboostMedium BassboostLevel = "medium"
	BassboostHigh   BassboostLevel = "high"
	BassboostInsane BassboostLevel = "insane"
	BassboostUltra  BassboostLevel = "ultra"
)

// Bassboost returns the gain template for the given level. The templates
// only touch the two lowest bands; apply them with Player.SetGains.
// Unknown levels return nil.
func Bassboost(level BassboostLevel) []BandGain {
	switch level {
	case BassboostOff:
		return []BandGain{{Band: 0, Gain: 0}, {Band: 1, Gain: 0}}
	case BassboostLow:
		return []BandGain{{Band: 0, Gain: 0.25}, {Band: 1, Gain: 0.15}}
	case BassboostMedium:
		return []BandGain{{Band: 0, Gain: 0.50}, {Band: 1, Gain: 0.25}}
	case BassboostHigh:
		return []BandGain{{Band: 0, Gain: 0.75}, {Band: 1, Gain: 0.50}}
	case BassboostInsane:
		return []BandGain{{Band: 0, Gain: 1}, {Band: 1, Gain: 0.75}}
	case BassboostUltra:
		return []BandGain{{Band: 0, Gain: 1}, {Band: 1, Gain: 2.0}}
	}
	return nil
}

func clampGain(gain float64) float64 {
	if gain > MaxGain {
		return MaxGain
	}
	if gain < MinGain {
		return MinGain
	}
	return gain
}
