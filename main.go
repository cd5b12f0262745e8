package main

import "sweeparr/cmd"

func main() {
	cmd.Execute()
}
