package styles

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/ballistic/internal/domain/entity"
	"github.com/bnema/ballistic/internal/domain/physics"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Cell.
		Foreground(theme.Text)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// EmissionTableColumns returns columns for the emission history table.
func EmissionTableColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Message", Width: 28},
		{Title: "Origin", Width: 28},
		{Title: "Via", Width: 10},
		{Title: "Bytes", Width: 8},
		{Title: "Sent", Width: 10},
	}
}

// EmissionRow converts an emission to a table row.
func EmissionRow(e *entity.Emission) table.Row {
	status := IconCheck
	if !e.Delivered {
		status = IconX
	}
	return table.Row{
		e.ShortID(),
		status + " " + string(e.Type),
		e.TargetOrigin,
		e.Transport,
		formatInt(e.PayloadSize),
		RelativeTime(e.CreatedAt),
	}
}

// FrameTableColumns returns columns for a trajectory table.
func FrameTableColumns() []table.Column {
	return []table.Column{
		{Title: "Frame", Width: 6},
		{Title: "t", Width: 6},
		{Title: "x", Width: 10},
		{Title: "y", Width: 10},
		{Title: "z", Width: 10},
	}
}

// FrameRow converts a frame to a table row.
func FrameRow(f physics.Frame) table.Row {
	return table.Row{
		strconv.Itoa(f.Index),
		strconv.FormatFloat(f.T, 'f', 2, 64),
		strconv.FormatFloat(f.Position.X(), 'f', 3, 64),
		strconv.FormatFloat(f.Position.Y(), 'f', 3, 64),
		strconv.FormatFloat(f.Position.Z(), 'f', 3, 64),
	}
}

// formatInt formats a byte count for display.
func formatInt(n int) string {
	switch {
	case n >= 1<<20:
		return strconv.FormatFloat(float64(n)/(1<<20), 'f', 1, 64) + "M"
	case n >= 1<<10:
		return strconv.FormatFloat(float64(n)/(1<<10), 'f', 1, 64) + "K"
	default:
		return strconv.Itoa(n)
	}
}
