package main

import "github.com/codetrail/devtrack/cmd"

func main() {
	cmd.Execute()
}
