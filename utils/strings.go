package utils

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Ellipsis marks text cut by Truncate.
const Ellipsis = "…"

// Cell is one grapheme cluster as a terminal draws it: a main rune, any
// combining runes, and the number of cells it occupies.
type Cell struct {
	Main  rune
	Comb  []rune
	Width int
}

// stepState carries uniseg's state between grapheme clusters.
type stepState struct {
	unisegState int
	boundaries  int
}

// Width returns the current grapheme cluster's width in cells.
func (s *stepState) Width() int {
	return s.boundaries >> uniseg.ShiftWidth
}

// step returns the next grapheme cluster of str.
func step(str string, state *stepState) (cluster, rest string, newState *stepState) {
	if state == nil {
		state = &stepState{
			unisegState: -1,
		}
	}
	if len(str) == 0 {
		return "", "", state
	}

	cluster, rest, state.boundaries, state.unisegState = uniseg.StepString(str, state.unisegState)
	return cluster, rest, state
}

// Width returns the number of terminal cells text occupies.
func Width(text string) int {
	return uniseg.StringWidth(text)
}

// Truncate shortens text to at most width cells, ending it with Ellipsis when
// anything was cut. Wide clusters are never split.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if Width(text) <= width {
		return text
	}

	var (
		sb    strings.Builder
		state *stepState
		used  int
	)
	limit := width - Width(Ellipsis)
	str := text
	for len(str) > 0 {
		var cluster string
		cluster, str, state = step(str, state)
		if used+state.Width() > limit {
			break
		}
		sb.WriteString(cluster)
		used += state.Width()
	}
	sb.WriteString(Ellipsis)

	return sb.String()
}

// Cells splits text into the cells needed to draw it. Zero-width clusters
// are dropped.
func Cells(text string) []Cell {
	var (
		cells []Cell
		state *stepState
	)
	str := text
	for len(str) > 0 {
		var cluster string
		cluster, str, state = step(str, state)
		if state.Width() == 0 {
			continue
		}

		runes := []rune(cluster)
		cells = append(cells, Cell{Main: runes[0], Comb: runes[1:], Width: state.Width()})
	}
	return cells
}
