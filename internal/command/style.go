package command

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	problemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Header renders a status section title.
func Header(title string) string { return headerStyle.Render("=== " + title + " ===") }

// Current highlights the checked out branch.
func Current(name string) string { return currentStyle.Render("*" + name) }

// Muted renders secondary text such as log field labels.
func Muted(s string) string { return mutedStyle.Render(s) }

// Problem renders a failing verification line.
func Problem(s string) string { return problemStyle.Render(s) }
