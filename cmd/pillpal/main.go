package main

import (
	"context"
	"fmt"
	"os"

	"pillpal/internal/cli"
)

//go:generate swag init -g cmd/pillpal/main.go -d ../.. -o ../../docs --outputTypes go

// @title PillPal API
// @version 1.0
// @description API local para registrar medicaciones, tomas y recordatorios.
// @BasePath /
func main() {
	if err := cli.RootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
