package calendar

// ANSI escape sequences used for the today marker.
const (
	reverse = "\033[7m"
	reset   = "\033[0m"
)

// Style decorates the text of a single cell. It must not change the
// visible width of its input.
type Style func(cell string) string

// ReverseVideo swaps foreground and background colors for the cell.
func ReverseVideo(cell string) string {
	return reverse + cell + reset
}

// highlight returns a copy of lines with the cell for day wrapped in style.
// lines must be the plain output of g.Lines.
func highlight(lines []string, g Grid, day int, style Style) []string {
	line, offset, ok := g.Locate(day)
	if !ok || style == nil {
		return lines
	}
	out := make([]string, len(lines))
	copy(out, lines)
	s := out[line]
	out[line] = s[:offset] + style(s[offset:offset+cellWidth]) + s[offset+cellWidth:]
	return out
}
