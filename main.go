package main

import "characli/cmd"

func main() {
	cmd.Execute()
}
