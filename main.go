package main

import "github.com/lepinkainen/artistpulse/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
