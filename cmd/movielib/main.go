package main

import "github.com/Clark-Hu/movielib/cmd/movielib/commands"

func main() {
	commands.Execute()
}
