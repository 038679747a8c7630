package main

import (
	"os"

	"github.com/meshline/meshline-go/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
