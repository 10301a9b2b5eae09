package main

import (
	"solparse/internal/cmd"
)

func main() {
	cmd.Execute()
}
