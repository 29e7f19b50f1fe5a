package main

import "classcheck/cmd"

func main() {
	cmd.Execute()
}
