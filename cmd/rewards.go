package cmd

import (
	"fmt"
	"strconv"

	"github.com/sportbook-io/sportbook-cli/internal/model"
	"github.com/sportbook-io/sportbook-cli/internal/tui"
	"github.com/spf13/cobra"
)

var rewardsOutput string

var RewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "Browse and redeem loyalty rewards",
	Long: `Browse the reward catalog. Each validated feedback earns one loyalty
point, and each reward costs one point. Browsing works without login;
redeeming and checking your balance require an account.
`,
	RunE: runRewardsList,
}

var rewardsPointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Show your loyalty point balance",
	RunE:  runRewardsPoints,
}

var rewardsRedeemedCmd = &cobra.Command{
	Use:   "redeemed",
	Short: "List rewards you already redeemed",
	RunE:  runRewardsRedeemed,
}

var rewardsRedeemCmd = &cobra.Command{
	Use:   "redeem <reward-id>",
	Short: "Spend one point on a reward",
	Args:  cobra.ExactArgs(1),
	RunE:  runRewardsRedeem,
}

func init() {
	RewardsCmd.Flags().StringVarP(&rewardsOutput, "output", "o", "table", "Output format: table, json or yaml")
	RewardsCmd.AddCommand(rewardsPointsCmd)
	RewardsCmd.AddCommand(rewardsRedeemedCmd)
	RewardsCmd.AddCommand(rewardsRedeemCmd)
}

func runRewardsList(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	viewer, err := app.Viewer()
	if err != nil {
		return err
	}

	ctx := commandContext()
	rewards := app.Rewards.Catalog(ctx, viewer)

	if rewardsOutput != "table" {
		return writeStructured(rewardsOutput, rewardsDoc(rewards))
	}

	if len(rewards) == 0 {
		fmt.Println(tui.RenderInfo("No rewards available."))
		return nil
	}

	fmt.Println(tui.TitleStyle.Render(fmt.Sprintf("%s Rewards", tui.IconTrophy)))
	for _, r := range rewards {
		fmt.Printf("  #%d  %s\n", r.ID, r.Description)
	}

	if authed, ok := viewer.(model.Authenticated); ok {
		if points, err := app.Rewards.Points(ctx, authed.ID); err == nil {
			fmt.Println()
			fmt.Println(tui.RenderInfo(fmt.Sprintf("You have %d point(s). Redeem with: sportbook rewards redeem <reward-id>", points)))
		}
	} else {
		fmt.Println()
		fmt.Println(tui.MutedStyle.Render("Log in to earn points through feedback and redeem rewards."))
	}
	return nil
}

func runRewardsPoints(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	viewer, err := app.RequireLogin()
	if err != nil {
		return err
	}

	points, err := app.Rewards.Points(commandContext(), viewer.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch points: %w", err)
	}
	fmt.Println(tui.RenderInfo(fmt.Sprintf("You have %d loyalty point(s).", points)))
	return nil
}

func runRewardsRedeemed(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	viewer, err := app.RequireLogin()
	if err != nil {
		return err
	}

	redeemed := app.Rewards.Redeemed(commandContext(), viewer.ID)
	if len(redeemed) == 0 {
		fmt.Println(tui.RenderInfo("You have not redeemed any rewards yet."))
		return nil
	}
	fmt.Println(tui.TitleStyle.Render("Redeemed rewards"))
	for _, r := range redeemed {
		fmt.Printf("  %s  %s\n", tui.SelectedStyle.Render(r.Code), r.Description)
	}
	fmt.Println()
	fmt.Println(tui.MutedStyle.Render("Show a code at the venue to use it."))
	return nil
}

func runRewardsRedeem(cmd *cobra.Command, args []string) error {
	rewardID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid reward id: %s", args[0])
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	viewer, err := app.RequireLogin()
	if err != nil {
		return err
	}

	ctx := commandContext()
	points, err := app.Rewards.Points(ctx, viewer.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch points: %w", err)
	}
	if points <= 0 {
		return fmt.Errorf("you have no points to spend; validated feedback earns one point each")
	}

	redeemed, err := app.Rewards.Redeem(ctx, rewardID, viewer.ID)
	if err != nil {
		return fmt.Errorf("redeem failed: %w", err)
	}

	fmt.Println(tui.RenderSuccess("Reward redeemed!"))
	fmt.Printf("%s Code: %s\n", tui.IconTrophy, tui.TitleStyle.Render(redeemed.Code))
	fmt.Println(tui.MutedStyle.Render("Show this code at the venue."))
	return nil
}

type rewardDoc struct {
	ID          int64  `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
}

func rewardsDoc(rewards []model.Reward) []rewardDoc {
	docs := make([]rewardDoc, 0, len(rewards))
	for _, r := range rewards {
		docs = append(docs, rewardDoc{ID: r.ID, Description: r.Description})
	}
	return docs
}
