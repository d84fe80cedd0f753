package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var requestListOwner string

var requestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List project requests",
	Args:  cobra.NoArgs,
	RunE:  runRequestList,
}

func init() {
	requestListCmd.Flags().StringVar(&requestListOwner, "owner", "",
		"Owner UID to list (defaults to the token's identity; admin only for others)")
}

func runRequestList(cmd *cobra.Command, args []string) error {
	c := resolveClient()

	requests, err := c.ListRequests(cmd.Context(), requestListOwner)
	if err != nil {
		return fmt.Errorf("list requests: %w", err)
	}

	out := cmd.OutOrStdout()

	if requestJSONOutput {
		return printJSON(out, map[string]any{
			"requests": requests,
			"total":    len(requests),
		})
	}

	if len(requests) == 0 {
		fmt.Fprintln(out, "No requests found.")
		return nil
	}

	w := newTabWriter(out)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSTATE\tBUDGET\tCREATED")
	for _, r := range requests {
		state := "published"
		if r.IsDraft {
			state = "draft"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f %s\t%s\n",
			r.ID,
			r.ProjectName,
			r.Category,
			state,
			r.Budget.Amount,
			r.Budget.Currency,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	w.Flush()

	return nil
}
