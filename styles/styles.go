package styles

import "github.com/charmbracelet/lipgloss"

const (
	ColorRed         = "#FF0000"
	ColorGreen       = "#00FF00"
	ColorBlue        = "#0000FF"
	ColorOrange      = "#FFA500"
	ColorYellow      = "#FFFF00"
	ColorPink        = "#FF69B4"
	ColorIndigo      = "#7571F9"
	ColorGrey        = "#7D7D7D"
	ColorWhite       = "#FFFFFF"
	ColorFocusBorder = "#F5F5F5"
	ColorBlurBorder  = "#3A3A3A"
	ColorPurple      = "#5F2AB6"
	ColorLightPink   = "#F5A3C7"
	ColorBlack       = "#000000"
	ColorDarkGrey    = "#303030"
)

var (
	Form = lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingTop(1)

	Notifier = struct {
		Success lipgloss.Style
		Error   lipgloss.Style
		Spinner lipgloss.Style
	}{
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Spinner: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorIndigo)),
	}

	Pagination = struct {
		Active   lipgloss.Style
		Inactive lipgloss.Style
		Disabled lipgloss.Style
	}{
		Active: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPink)).
			Bold(true),
		Inactive: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWhite)),
		Disabled: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBlurBorder)),
	}

	Statusbar = struct {
		Title    lipgloss.Style
		Key      lipgloss.Style
		Shortcut lipgloss.Style
	}{
		Title: lipgloss.NewStyle().
			Background(lipgloss.Color(ColorIndigo)).
			Foreground(lipgloss.Color(ColorWhite)).
			Padding(0, 2),
		Key:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Shortcut: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGrey)),
	}

	Tab = struct {
		Active lipgloss.Style
		Tab    lipgloss.Style
	}{
		Active: lipgloss.NewStyle().
			Background(lipgloss.Color(ColorPurple)).
			Foreground(lipgloss.Color(ColorWhite)).
			Bold(true).
			Padding(0, 2),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorGrey)).
			Padding(0, 2),
	}

	SelectedRow = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPink)).
			Bold(true)

	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorIndigo)).
		Bold(true)
)

func CmdBarWithWidth(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorFocusBorder)).
		Width(width)
}
