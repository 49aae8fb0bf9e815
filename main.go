package main

import "github.com/docpush/gdocs/cmd"

// version is overridden by goreleaser at build time.
var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
