package main

import (
	"os"

	"go-tania/commands"
)

func main() {
	os.Exit(commands.Execute(os.Stderr))
}
