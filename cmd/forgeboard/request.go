package main

import (
	"encoding/json"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/forgeboard/forgeboard/pkg/client"
)

var (
	requestServerURL  string
	requestToken      string
	requestJSONOutput bool
)

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Inspect project requests on a running server",
	Long:  "List and inspect project requests over the HTTP API without direct database access.",
}

func init() {
	requestCmd.PersistentFlags().StringVar(&requestServerURL, "server", "http://localhost:8080",
		"Forgeboard server URL")
	requestCmd.PersistentFlags().StringVar(&requestToken, "token", "",
		"Bearer token (defaults to FORGEBOARD_TOKEN)")
	requestCmd.PersistentFlags().BoolVar(&requestJSONOutput, "json", false,
		"Output in JSON format")

	requestCmd.AddCommand(requestListCmd)
	requestCmd.AddCommand(requestInfoCmd)
}

// resolveClient creates an API client from the persistent flags.
func resolveClient() *client.Client {
	token := requestToken
	if token == "" {
		token = os.Getenv("FORGEBOARD_TOKEN")
	}
	return client.New(requestServerURL, token)
}

// printJSON marshals v to JSON and writes to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTabWriter returns a configured tabwriter for aligned columns.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}
