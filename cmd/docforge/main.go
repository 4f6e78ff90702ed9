package main

import (
	"context"
	"fmt"
	"os"

	"github.com/arthur-debert/docforge/internal/cli"
	"github.com/arthur-debert/docforge/pkg/widget"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		// Print the error in red
		errorStyle := widget.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
