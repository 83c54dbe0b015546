package main

import (
	"fmt"
	"os"

	"github.com/pathfinity/pathfinity-backend/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		fmt.Printf("server exited: %v\n", err)
		os.Exit(1)
	}
}
