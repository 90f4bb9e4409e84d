package shared

import "github.com/charmbracelet/lipgloss"

// RenderWidgetBox renders content in a titled box with borders.
// Width accounts for borders and padding.
func RenderWidgetBox(title, content string, width int) string {
	const widthOverhead = 4 // Account for borders (2) and padding (2)

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor())
	boxStyle := BoxStyle().Width(width - widthOverhead)

	return boxStyle.Render(titleStyle.Render(title) + "\n" + content)
}

// RenderField renders a "label: value" line with aligned labels.
func RenderField(label, value string, labelWidth int) string {
	return lipgloss.NewStyle().Width(labelWidth).Render(RenderLabel(label+":")) + " " + value
}
