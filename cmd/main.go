package main

import (
	"os"

	"github.com/oksasatya/todo-api/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
