package tui

func renderErrorOverlay(message string) string {
	content := "Error\n\n" + message + "\n\nenter / esc: close"
	return overlayBoxStyle.Render(content)
}

func renderConfirm(message string) string {
	content := message + "\n\n"
	content += "y: yes    n: no"
	return overlayBoxStyle.Render(content)
}
