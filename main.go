// Package main is the entry point for the portal CLI application.
// It signs in to the portal API and shows the protected dashboard data.
package main

import (
	"portal/cli/cmd"
)

func main() {
	cmd.Execute()
}
