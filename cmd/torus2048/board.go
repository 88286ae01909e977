package main

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/vovakirdan/torus2048/internal/engine"
	"github.com/vovakirdan/torus2048/internal/games/torus"
	"github.com/vovakirdan/torus2048/internal/platform/tui"
)

const boardCellWidth = 6

// printBoard draws values ([x][y]) as a coloured table. Colours degrade to
// whatever the output's profile supports, down to plain text when piped.
func printBoard(out *termenv.Output, values [engine.Size][engine.Size]int) {
	sep := "+" + strings.Repeat(strings.Repeat("-", boardCellWidth)+"+", engine.Size)
	fmt.Fprintln(out, sep)
	for y := range engine.Size {
		var row strings.Builder
		row.WriteString("|")
		for x := range engine.Size {
			v := values[x][y]
			if v == 0 {
				row.WriteString(strings.Repeat(" ", boardCellWidth))
			} else {
				cell := fmt.Sprintf("%*d ", boardCellWidth-1, v)
				row.WriteString(tileStyle(out, v).Styled(cell))
			}
			row.WriteString("|")
		}
		fmt.Fprintln(out, row.String())
		fmt.Fprintln(out, sep)
	}
}

func tileStyle(out *termenv.Output, value int) termenv.Style {
	style := out.String().Bold()
	if code := tui.ColorCode(torus.TileColor(value)); code != "" {
		style = style.Foreground(out.Color(code))
	}
	return style
}

// highlight renders s in the colour used for value.
func highlight(out *termenv.Output, value int, s string) string {
	return tileStyle(out, value).Styled(s)
}
