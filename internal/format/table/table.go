package table

import "strings"

// AlignRows pads every cell to the widest entry of its column so that
// multi-column labels read as a table. Columns are separated by two spaces;
// trailing padding is trimmed.
func AlignRows(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for c, cell := range row {
			if c >= len(widths) {
				widths = append(widths, 0)
			}
			if w := len([]rune(cell)); w > widths[c] {
				widths[c] = w
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			if c < len(row)-1 {
				pad := widths[c] - len([]rune(cell))
				for p := 0; p < pad; p++ {
					b.WriteByte(' ')
				}
			}
		}
		out[i] = strings.TrimRight(b.String(), " ")
	}
	return out
}
