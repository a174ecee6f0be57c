package main

import (
	"fmt"
	"strings"

	"github.com/bubblecluster/bubble"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

var columns = []string{"region", "target", "area", "pressure", "perimeter"}

const columnWidth = 11

func row(style lipgloss.Style, cells ...string) string {
	rendered := make([]string, len(cells))
	for i, c := range cells {
		rendered[i] = style.Width(columnWidth).Align(lipgloss.Right).Render(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// MeasuresTable renders the target, area, pressure and perimeter of every
// region of c, followed by totals for the cluster.
func MeasuresTable(c *bubble.Cluster) string {
	var b strings.Builder
	b.WriteString(row(headerStyle, columns...) + "\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", columnWidth*len(columns))) + "\n")
	var target float64
	for _, r := range c.Regions() {
		target += r.AreaTarget()
		b.WriteString(row(cellStyle,
			fmt.Sprint(r.ID()),
			fmt.Sprintf("%.4f", r.AreaTarget()),
			fmt.Sprintf("%.4f", r.Area()),
			fmt.Sprintf("%.4f", r.Pressure()),
			fmt.Sprintf("%.4f", r.Perimeter()),
		) + "\n")
	}
	b.WriteString(dimStyle.Render(strings.Repeat("─", columnWidth*len(columns))) + "\n")
	b.WriteString(row(dimStyle,
		"total",
		fmt.Sprintf("%.4f", target),
		fmt.Sprintf("%.4f", c.Area()),
		"",
		fmt.Sprintf("%.4f", c.Perimeter()),
	) + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d regions, %d chains, %d nodes",
		len(c.Regions()), len(c.Chains()), len(c.Nodes()))) + "\n")
	return b.String()
}
