package main

import "github.com/fusix/intentsrc/cmd"

func main() {
	cmd.Execute()
}
