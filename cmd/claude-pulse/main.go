// Package main is the entry point for the claude-pulse status line.
// With no arguments it renders one status line for the host; subcommands
// manage themes, visibility, history, and updates.
package main

import "os"

func main() {
	os.Exit(Execute())
}
