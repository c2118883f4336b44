package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dealflow/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// LeadStatusPill renders a lead status with stage-appropriate coloring.
func LeadStatusPill(s domain.LeadStatus) string {
	switch s {
	case domain.LeadNew:
		return StyleDim.Render(string(s))
	case domain.LeadEnriched:
		return StyleBlue.Render(string(s))
	case domain.LeadQualified:
		return StyleGreen.Render(string(s))
	case domain.LeadTransferred:
		return StylePurple.Render(string(s))
	default:
		return StyleFg.Render(string(s))
	}
}

// DealStatusPill renders a deal status, green for won, red for lost, yellow
// for the negotiation stages.
func DealStatusPill(s domain.DealStatus) string {
	switch s {
	case domain.DealClosedWon:
		return StyleGreen.Render(string(s))
	case domain.DealClosedLost:
		return StyleRed.Render(string(s))
	case domain.DealProposalSent, domain.DealNegotiating:
		return StyleYellow.Render(string(s))
	case domain.DealReceived:
		return StyleDim.Render(string(s))
	default:
		return StyleBlue.Render(string(s))
	}
}

// ProjectStatusPill renders a project status.
func ProjectStatusPill(s domain.ProjectStatus) string {
	switch s {
	case domain.ProjectCompleted:
		return StyleGreen.Render(string(s))
	case domain.ProjectReview:
		return StyleYellow.Render(string(s))
	case domain.ProjectInProgress:
		return StyleBlue.Render(string(s))
	default:
		return StyleDim.Render(string(s))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
