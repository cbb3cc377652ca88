package cmd

import (
	"fmt"
	"strconv"

	"github.com/sportbook-io/sportbook-cli/internal/tui"
	"github.com/spf13/cobra"
)

var CompanyCmd = &cobra.Command{
	Use:   "company <company-id>",
	Short: "Show a venue and its feedback",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompany,
}

func runCompany(cmd *cobra.Command, args []string) error {
	companyID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid company id: %s", args[0])
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := commandContext()
	venue, err := app.Company.Get(ctx, companyID)
	if err != nil {
		return fmt.Errorf("company %d not found", companyID)
	}

	fmt.Printf("%s  %s\n", tui.IconPlace, tui.TitleStyle.Render(venue.Name))
	if venue.Description != "" {
		fmt.Println(tui.MutedStyle.Render(venue.Description))
	}

	feedbacks := app.Company.Feedbacks(ctx, companyID)
	if len(feedbacks) == 0 {
		fmt.Println()
		fmt.Println(tui.RenderInfo("No feedback yet."))
		return nil
	}

	total := 0
	for _, f := range feedbacks {
		total += f.Score
	}
	fmt.Println()
	fmt.Printf("Feedback: %d review(s), average %.1f/5\n", len(feedbacks), float64(total)/float64(len(feedbacks)))

	for _, f := range feedbacks {
		author := f.UserName
		if author == "" {
			author = "anonymous"
		}
		fmt.Println()
		fmt.Printf("  %s  %s, %s\n", tui.SelectedStyle.Render(fmt.Sprintf("%d/5", f.Score)),
			author, f.Timestamp.Format("2 Jan 2006"))
		if f.Message != "" {
			fmt.Printf("  %s\n", f.Message)
		}
	}
	return nil
}
