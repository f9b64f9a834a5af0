package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/vancomm/minesweeper/internal/session"
)

func render(w io.Writer, snap session.Snapshot) {
	rows, cols, _ := snap.Params.Unpack()
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s  mines: %d  time: %ds\n",
		snap.Preset, snap.Params, snap.Remaining, snap.Elapsed)

	sb.WriteString("    ")
	for col := range cols {
		fmt.Fprintf(&sb, "%d ", col%10)
	}
	sb.WriteString("\n")

	for row := range rows {
		fmt.Fprintf(&sb, "%3d ", row)
		for _, cell := range snap.Grid[row*cols : (row+1)*cols] {
			sb.WriteString(cell.String())
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}

	if msg := snap.Phase.Message(); msg != "" {
		sb.WriteString(msg)
		sb.WriteString("\n")
	}
	io.WriteString(w, sb.String())
}
