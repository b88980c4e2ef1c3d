package main

import "kina/cmd"

func main() {
	cmd.Execute()
}
