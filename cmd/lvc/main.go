package main

import (
	"os"

	"github.com/keshon/lvc/internal/command"
	_ "github.com/keshon/lvc/internal/command/all"
)

func main() {
	os.Exit(command.Execute(command.DefaultEnv(), os.Args[1:]))
}
