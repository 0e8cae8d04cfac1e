package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LdDl/explore-go/costmap"
	"github.com/LdDl/explore-go/frontier"
)

var (
	styleFree     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleObstacle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	styleUnknown  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	styleBest     = lipgloss.NewStyle().Background(lipgloss.Color("10")).Foreground(lipgloss.Color("0"))
	styleFrontier = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleRobot    = lipgloss.NewStyle().Background(lipgloss.Color("13")).Foreground(lipgloss.Color("0"))
)

// renderMap draws the map top row first. Frontier cells carry the rank of
// their frontier (0-9, '*' beyond); the robot is 'R'.
func renderMap(grid *costmap.Costmap, frontiers []frontier.Frontier, robot frontier.Point, color bool) string {
	sizeX, sizeY := grid.SizeInCellsX(), grid.SizeInCellsY()
	ranks := make(map[int]int)
	for rank, f := range frontiers {
		members := append([]frontier.Point{f.Initial}, f.Points...)
		for _, p := range members {
			if mx, my, ok := grid.WorldToMap(p.X, p.Y); ok {
				ranks[grid.Index(mx, my)] = rank
			}
		}
	}
	robotIdx := -1
	if mx, my, ok := grid.WorldToMap(robot.X, robot.Y); ok {
		robotIdx = grid.Index(mx, my)
	}

	paint := func(style lipgloss.Style, s string) string {
		if !color {
			return s
		}
		return style.Render(s)
	}

	var sb strings.Builder
	for my := sizeY - 1; my >= 0; my-- {
		for mx := 0; mx < sizeX; mx++ {
			idx := grid.Index(mx, my)
			if idx == robotIdx {
				sb.WriteString(paint(styleRobot, "R"))
				continue
			}
			if rank, ok := ranks[idx]; ok {
				glyph := "*"
				if rank < 10 {
					glyph = string(rune('0' + rank))
				}
				if rank == 0 {
					sb.WriteString(paint(styleBest, glyph))
				} else {
					sb.WriteString(paint(styleFrontier, glyph))
				}
				continue
			}
			switch frontier.Classify(grid.Cost(idx)) {
			case frontier.Free:
				sb.WriteString(paint(styleFree, "."))
			case frontier.Unknown:
				sb.WriteString(paint(styleUnknown, "?"))
			default:
				sb.WriteString(paint(styleObstacle, "#"))
			}
		}
		if my > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
