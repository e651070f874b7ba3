package main

import (
	"fmt"
	"os"

	"github.com/bugielektrik/fieldcache/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fieldcache: failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "fieldcache: application exited with error: %v\n", err)
		os.Exit(1)
	}
}
