// Package main provides the socreport CLI.
//
// Usage:
//
//	socreport serve
//	socreport pdf -i report.json --engine basic
//
// See --help for all available options.
package main

func main() {
	Execute()
}
