// Package main is the entry point for the aigcap CLI.
package main

import "aigcap.dev/pkg/aigcap/cmd"

func main() {
	cmd.Execute()
}
