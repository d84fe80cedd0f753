package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forgeboard/forgeboard/pkg/client"
)

var requestInfoCmd = &cobra.Command{
	Use:   "info <request-id>",
	Short: "Show a request and, when published, its tracked progress",
	Args:  cobra.ExactArgs(1),
	RunE:  runRequestInfo,
}

func runRequestInfo(cmd *cobra.Command, args []string) error {
	id := args[0]
	c := resolveClient()
	ctx := cmd.Context()

	req, err := c.GetRequest(ctx, id)
	if err != nil {
		return fmt.Errorf("get request: %w", err)
	}

	// Published requests carry a lifecycle record; drafts do not.
	var prog *client.Progress
	if !req.IsDraft {
		prog, err = c.GetProgress(ctx, id)
		if err != nil {
			var apiErr *client.APIError
			if !errors.As(err, &apiErr) || apiErr.Status != 404 {
				return fmt.Errorf("get progress: %w", err)
			}
		}
	}

	out := cmd.OutOrStdout()

	if requestJSONOutput {
		payload := map[string]any{"request": req}
		if prog != nil {
			payload["progress"] = prog
		}
		return printJSON(out, payload)
	}

	state := "published"
	if req.IsDraft {
		state = "draft"
	}

	fmt.Fprintf(out, "Request:     %s\n", req.ID)
	fmt.Fprintf(out, "Name:        %s\n", req.ProjectName)
	fmt.Fprintf(out, "Owner:       %s\n", req.OwnerID)
	fmt.Fprintf(out, "Category:    %s\n", req.Category)
	if len(req.SubCategories) > 0 {
		fmt.Fprintf(out, "Tags:        %s\n", strings.Join(req.SubCategories, ", "))
	}
	fmt.Fprintf(out, "Type:        %s\n", req.ProjectType)
	fmt.Fprintf(out, "Budget:      %.2f %s\n", req.Budget.Amount, req.Budget.Currency)
	fmt.Fprintf(out, "State:       %s\n", state)
	fmt.Fprintf(out, "Attachments: %d\n", len(req.Attachments))
	fmt.Fprintf(out, "Created:     %s\n", req.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	if req.PublishedAt != nil {
		fmt.Fprintf(out, "Published:   %s\n", req.PublishedAt.Format("2006-01-02 15:04:05 MST"))
	}

	if prog != nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Status:      %s\n", prog.Status)
		fmt.Fprintf(out, "Progress:    %d%% (%d/%d tasks)\n",
			prog.ProgressPercent, prog.TasksCompleted, prog.TasksTotal)
		fmt.Fprintf(out, "Hours:       %.1f\n", prog.HoursSpent)
		fmt.Fprintf(out, "Team:        %d member(s)\n", prog.TeamSize)
		fmt.Fprintf(out, "Milestones:  %d/%d complete\n",
			prog.Summary.MilestonesCompleted, prog.Summary.MilestonesTotal)
		if prog.DeletionScheduledAt != nil {
			fmt.Fprintf(out, "Deletion:    %s\n",
				prog.DeletionScheduledAt.Format("2006-01-02 15:04:05 MST"))
		}
	}

	return nil
}
