// Package cli implements the flightq commands, which run the flight and
// booking queries over JSON files.
package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "flightq",
		Short:        "Query flight and booking JSON files",
		Long:         "Run the flight search, booking table and manage-booking queries offline over JSON exports.",
		SilenceUsage: true,
	}
	root.AddCommand(newFlightsCmd(), newBookingsCmd())
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
