// Package main is the entry point for the awaitscan CLI.
package main

import "awaitscan.dev/pkg/awaitscan/cmd"

func main() {
	cmd.Execute()
}
