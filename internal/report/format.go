package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count in 1024-based units with up to two
// decimal places, trailing zeros trimmed: "0 Bytes", "1.5 KB", "1 MB".
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	value := float64(bytes) / math.Pow(1024, float64(i))
	rounded := math.Round(value*100) / 100
	s := strconv.FormatFloat(rounded, 'f', -1, 64)
	return s + " " + sizeUnits[i]
}

// FormatCurrency renders a monetary value as a $-prefixed, two-decimal,
// thousands-separated string: "$1,234.50", "$0.00".
func FormatCurrency(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	fixed := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	return sign + "$" + groupThousands(intPart) + "." + fracPart
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	if n < 0 {
		return "-" + groupThousands(strconv.Itoa(-n))
	}
	return groupThousands(strconv.Itoa(n))
}

// FormatACOS renders spend/sales as a percentage to one decimal place.
// Zero or missing sales reports "0%" rather than dividing by zero.
func FormatACOS(spend, sales float64) string {
	if sales <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", spend/sales*100)
}

// FormatPercent renders a ratio-derived percentage to one decimal place.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var sb strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
