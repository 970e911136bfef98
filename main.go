// Package main is the entry point for the modtest CLI.
package main

import "modtest.dev/pkg/modtest/cmd"

func main() {
	cmd.Execute()
}
