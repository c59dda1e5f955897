package main

import "julius/cmd"

func main() {
	cmd.Execute()
}
