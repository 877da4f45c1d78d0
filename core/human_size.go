package core

import (
	"math"
	"strconv"
)

var sizeUnits = [...]string{"B", "KB", "MB", "GB", "TB"}

// humanFileSize renders size in binary units with at most two decimals,
// rounding half up.
func humanFileSize(size float64) string {
	if size < 1 {
		return "0 B"
	}
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	rounded := math.Floor(size*100+0.5) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[unit]
}
