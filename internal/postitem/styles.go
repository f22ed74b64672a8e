package postitem

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#1877F2")
	colorMuted  = lipgloss.Color("#8A8D91")
	colorLiked  = lipgloss.Color("#F02849")
	colorGold   = lipgloss.Color("#F7B928")
	colorBorder = lipgloss.Color("#3E4042")

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	selectedCardStyle = cardStyle.BorderForeground(colorAccent)

	avatarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorAccent).
			Bold(true).
			Padding(0, 1)

	nameStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	premiumStyle = lipgloss.NewStyle().Foreground(colorGold)
	tagStyle     = lipgloss.NewStyle().Foreground(colorAccent)
	likedStyle   = lipgloss.NewStyle().Foreground(colorLiked).Bold(true)
	menuStyle    = lipgloss.NewStyle().Foreground(colorLiked)

	imageStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorBorder).
			Foreground(colorMuted).
			Align(lipgloss.Center)

	commentStyle = lipgloss.NewStyle().
			PaddingLeft(2)
)
