package meta

import (
	"strconv"
	"strings"
)

// Keys that adjust heading levels.
const (
	KeyShiftHeading = "shiftheadinglevelby"
	KeyBaseHeader   = "baseheaderlevel"
)

// HeaderOffset interprets the shiftheadinglevelby and baseheaderlevel
// keys. A shift of n gives an offset of n+1 (range -100..100); a base
// level of n gives n (range 1..100). Other keys and out-of-range or
// malformed values report false. Keys match case-sensitively.
func HeaderOffset(key, value string) (int, bool) {
	minVal, maxVal, bias := 0, 0, 0
	switch key {
	case KeyShiftHeading:
		minVal, maxVal, bias = -100, 100, 1
	case KeyBaseHeader:
		minVal, maxVal = 1, 100
	default:
		return 0, false
	}

	val, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || val < minVal || val > maxVal {
		return 0, false
	}
	return val + bias, true
}
