package ui

import (
	"github.com/fatih/color"
)

var Green = color.New(color.FgGreen).SprintFunc()
var Red = color.New(color.FgRed).SprintFunc()
var Bold = color.New(color.Bold).SprintFunc()
var Grey = color.New(color.FgHiBlack).SprintFunc()
var Yellow = color.New(color.FgYellow).SprintFunc()

// Arrow and DryRun are functions rather than values: the color mode is
// only known once the flags are parsed.
func Arrow() string {
	return Grey("→")
}

func DryRun() string {
	return Yellow("dry-run")
}

// SetColor forces colored output on or off regardless of the terminal.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}
