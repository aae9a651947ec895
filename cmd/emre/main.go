// cmd/emre/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "emre",
		Short: "Emergency-response coordination backend",
		Long:  "Multi-tenant coordination backend for emergency-response organizations: teams, incidents and resource dispatch over a single HTTP API.",
	}

	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
