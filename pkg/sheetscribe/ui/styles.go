package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/models"
)

type statusStyles struct {
	info    lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	dim     lipgloss.Style
}

func newStatusStyles(r *lipgloss.Renderer) statusStyles {
	return statusStyles{
		info: r.NewStyle().
			Foreground(lipgloss.Color("39")),
		success: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")),
		failure: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		dim: r.NewStyle().
			Foreground(lipgloss.Color("242")),
	}
}

func (s statusStyles) forKind(kind models.StatusKind) (lipgloss.Style, string) {
	switch kind {
	case models.StatusSuccess:
		return s.success, "✓"
	case models.StatusError:
		return s.failure, "✗"
	default:
		return s.info, "•"
	}
}
