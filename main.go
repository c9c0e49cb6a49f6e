package main

import "card-manager/cmd"

func main() {
	cmd.Execute()
}
