package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
)

var (
	moduleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true) // Cyan
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))           // Gray
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))           // Yellow
)

// ModuleInfo is one line of the module listing.
type ModuleInfo struct {
	Name     string
	Expects  int
	Provides int
	Template string
}

// RenderModules renders modules as a tree, one node per module.
func RenderModules(modules []ModuleInfo) string {
	if len(modules) == 0 {
		return keyStyle.Render("No modules found")
	}

	root := tree.Root(Styles.Bold.Render("MODULES"))
	for _, mod := range modules {
		root.Child(tree.New().Root(moduleStyle.Render(mod.Name)).Child(
			formatKeyValue("Expects:", fmt.Sprintf("%d path(s)", mod.Expects)),
			formatKeyValue("Provides:", fmt.Sprintf("%d path(s)", mod.Provides)),
			formatKeyValue("Template:", mod.Template),
		))
	}

	return root.String()
}

func formatKeyValue(key, value string) string {
	return keyStyle.Render(key) + " " + valueStyle.Render(value)
}
