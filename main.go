// Package main is the entry point for the dupes CLI.
package main

import "dupes.dev/pkg/dupes/cmd"

func main() {
	cmd.Execute()
}
