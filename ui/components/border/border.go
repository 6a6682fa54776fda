package border

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"skconsole/styles"
)

const (
	TopLeftBorder Position = iota
	TopMiddleBorder
	TopRightBorder
	BottomLeftBorder
	BottomMiddleBorder
	BottomRightBorder
)

type Model struct {
	Focused    bool
	textByPos  map[Position]TextFunc
	paddingTop string
}

type Position int

type TextFunc func(m *Model) string

type Option func(m *Model)

func (m *Model) View(content string) string {
	return m.borderize(m.paddingTop + content)
}

func (m *Model) encloseText(text string) string {
	if text != "" {
		return " " + text + " "
	}
	return text
}

func (m *Model) buildBorderLine(
	style lipgloss.Style,
	maxWidth int,
	leftText, middleText, rightText, leftCorner, border, rightCorner string,
) string {
	leftText = m.encloseText(leftText)
	middleText = m.encloseText(middleText)
	rightText = m.encloseText(rightText)

	// Calculate remaining space for borders
	remaining := maxWidth - lipgloss.Width(leftText) - lipgloss.Width(middleText) - lipgloss.Width(rightText)
	if remaining < 0 {
		remaining = 0
	}

	leftBorderLen := remaining / 2
	rightBorderLen := remaining - leftBorderLen

	// Build the borderline
	borderLine := leftText +
		style.Render(strings.Repeat(border, leftBorderLen)) +
		middleText +
		style.Render(strings.Repeat(border, rightBorderLen)) +
		rightText

	// Add corners
	return style.Render(leftCorner) + borderLine + style.Render(rightCorner)
}

func (m *Model) borderize(content string) string {

	borderColor := styles.ColorFocusBorder
	if !m.Focused {
		borderColor = styles.ColorBlurBorder
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))

	// Split content into lines to get the maximum width
	lines := strings.Split(content, "\n")
	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}

	// Create the bordered content
	topBorder := m.buildBorderLine(
		style,
		maxWidth,
		m.getTextOrEmpty(m.textByPos[TopLeftBorder]),
		m.getTextOrEmpty(m.textByPos[TopMiddleBorder]),
		m.getTextOrEmpty(m.textByPos[TopRightBorder]),
		"╭", "─", "╮",
	)

	// Create side borders for content
	borderedLines := make([]string, len(lines))
	for i, line := range lines {
		lineWidth := lipgloss.Width(line)
		var paddedLine string
		if lineWidth < maxWidth {
			paddedLine = line + strings.Repeat(" ", maxWidth-lineWidth)
		} else if lineWidth > maxWidth {
			paddedLine = lipgloss.NewStyle().MaxWidth(maxWidth).Render(line)
		} else {
			paddedLine = line
		}
		borderedLines[i] = style.Render("│") + paddedLine + style.Render("│")
	}
	borderedContent := strings.Join(borderedLines, "\n")

	// Create bottom border
	bottomBorder := m.buildBorderLine(
		style,
		maxWidth,
		m.getTextOrEmpty(m.textByPos[BottomLeftBorder]),
		m.getTextOrEmpty(m.textByPos[BottomMiddleBorder]),
		m.getTextOrEmpty(m.textByPos[BottomRightBorder]),
		"╰", "─", "╯",
	)

	// Final content with borders
	return topBorder + "\n" + borderedContent + "\n" + bottomBorder
}

func (m *Model) getTextOrEmpty(embeddedText TextFunc) string {
	if embeddedText == nil {
		return ""
	}
	return embeddedText(m)
}

func Title(title string, active bool) string {
	return KeyValueTitle(title, "", active)
}

func KeyValueTitle(
	keyLabel string,
	valueLabel string,
	active bool,
) string {
	var (
		colorLabel lipgloss.Color = styles.ColorGrey
		colorCount lipgloss.Color = styles.ColorLightPink
	)
	if active {
		colorLabel = styles.ColorWhite
		colorCount = styles.ColorPink
	}

	var renderedValueLabel string
	if valueLabel == "" {
		renderedValueLabel = ""
	} else {
		renderedValueLabel = ":" + lipgloss.NewStyle().
			Foreground(colorCount).
			Bold(true).
			Render(fmt.Sprintf(" %s", valueLabel))
	}

	return lipgloss.NewStyle().
		Foreground(colorLabel).
		Bold(true).
		Render(fmt.Sprintf("[ %s", keyLabel)) + renderedValueLabel +
		lipgloss.NewStyle().
			Foreground(colorLabel).
			Bold(true).
			Render(" ]")
}

// WithTitleFn adds the string result of the function
// as a right top and bottom aligned title string
func WithTitleFn(titleFunc func() string) Option {
	return func(m *Model) {
		m.textByPos[TopRightBorder] = func(_ *Model) string {
			return titleFunc()
		}
		m.textByPos[BottomRightBorder] = func(_ *Model) string {
			return titleFunc()
		}
	}
}

// WithText renders the result of textFunc at pos.
func WithText(pos Position, textFunc func() string) Option {
	return func(m *Model) {
		m.textByPos[pos] = func(_ *Model) string {
			return textFunc()
		}
	}
}

func WithInnerPaddingTop() Option {
	return func(m *Model) {
		m.paddingTop = "\n"
	}
}

func New(options ...Option) *Model {
	m := &Model{}
	m.textByPos = make(map[Position]TextFunc)
	m.Focused = true

	for _, option := range options {
		option(m)
	}

	return m
}
