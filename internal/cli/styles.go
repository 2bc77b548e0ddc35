package cli

import "github.com/charmbracelet/lipgloss"

// Styles used by the cluster command's terminal output.
var (
	HeaderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	ClusterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	CountStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	ItemStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	OutlierStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	DimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
