package sheets

import (
	"fmt"
	"strconv"
	"strings"
)

// RowRange builds the A1 range addressing a single full row, e.g.
// RowRange('G', 5) -> "A5:G5".
func RowRange(lastCol byte, row int) string {
	return fmt.Sprintf("A%d:%c%d", row, lastCol, row)
}

// ColumnSpan builds the open range covering a whole table, e.g.
// ColumnSpan('G') -> "A:G".
func ColumnSpan(lastCol byte) string {
	return fmt.Sprintf("A:%c", lastCol)
}

// RowBounds extracts the 1-based start and end rows from an A1 range.
// Open ranges like "A:G" return (0, 0, true), meaning "all rows".
// Used by the grid adapters, which store whole rows and only need the
// vertical extent of a range.
func RowBounds(rangeSpec string) (start, end int, ok bool) {
	parts := strings.SplitN(rangeSpec, ":", 2)
	start, ok = rowNumber(parts[0])
	if !ok {
		return 0, 0, false
	}
	end = start
	if len(parts) == 2 {
		end, ok = rowNumber(parts[1])
		if !ok {
			return 0, 0, false
		}
	}
	if start != 0 && end != 0 && end < start {
		return 0, 0, false
	}
	return start, end, true
}

// rowNumber strips the column letters off an A1 cell reference and
// parses the remaining digits. "A" -> (0, true); "G12" -> (12, true).
func rowNumber(ref string) (int, bool) {
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	digits := ref[i:]
	if digits == "" {
		return 0, true
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
