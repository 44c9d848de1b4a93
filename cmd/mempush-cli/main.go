package main

import "mempush/cmd/mempush-cli/cmd"

func main() {
	cmd.Execute()
}
