package main

import "mimo/cmd/mimoctl/command"

func main() {
	command.Execute()
}
