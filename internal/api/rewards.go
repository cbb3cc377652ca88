package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/sportbook-io/sportbook-cli/internal/model"
)

func userQuery(userID int64) url.Values {
	q := url.Values{}
	q.Set("userId", strconv.FormatInt(userID, 10))
	return q
}

type wireReward struct {
	ID          wireInt `json:"id"`
	Description string  `json:"description"`
}

// Rewards returns the reward catalog. Anonymous viewers pass 0.
func (c *Client) Rewards(ctx context.Context, userID int64) ([]model.Reward, error) {
	var rows []wireReward
	if err := c.getJSON(ctx, "/rewards", userQuery(userID), &rows); err != nil {
		return nil, err
	}
	rewards := make([]model.Reward, 0, len(rows))
	for _, row := range rows {
		rewards = append(rewards, model.Reward{ID: int64(row.ID), Description: row.Description})
	}
	return rewards, nil
}

type wireRedeemed struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// RedeemedRewards returns the user's redemption receipts.
func (c *Client) RedeemedRewards(ctx context.Context, userID int64) ([]model.RedeemedReward, error) {
	var rows []wireRedeemed
	if err := c.getJSON(ctx, "/redeemed-rewards", userQuery(userID), &rows); err != nil {
		return nil, err
	}
	redeemed := make([]model.RedeemedReward, 0, len(rows))
	for _, row := range rows {
		redeemed = append(redeemed, model.RedeemedReward{Code: row.Code, Description: row.Description})
	}
	return redeemed, nil
}

// UserPoints returns the server-computed loyalty balance: validated
// activities minus redemptions. The client never recomputes this.
func (c *Client) UserPoints(ctx context.Context, userID int64) (int, error) {
	var resp struct {
		Points wireInt `json:"points"`
	}
	if err := c.getJSON(ctx, "/user-points", userQuery(userID), &resp); err != nil {
		return 0, err
	}
	return int(resp.Points), nil
}

// RedeemReward spends one point on a reward and returns the receipt.
func (c *Client) RedeemReward(ctx context.Context, rewardID, userID int64) (model.RedeemedReward, error) {
	body := map[string]any{
		"rewardId": rewardID,
		"userId":   userID,
	}
	var row wireRedeemed
	if err := c.postJSON(ctx, "/redeem-reward", body, &row); err != nil {
		return model.RedeemedReward{}, err
	}
	return model.RedeemedReward{Code: row.Code, Description: row.Description}, nil
}

type wireFeedback struct {
	ID          wireInt `json:"id"`
	CompanyID   wireInt `json:"company_id"`
	CompanyName string  `json:"company_name"`
	Message     string  `json:"message"`
	Score       wireInt `json:"score"`
	Timestamp   wireInt `json:"timestamp"`
	UserName    string  `json:"userName"`
}

// CompanyFeedbacks returns the reviews left for a venue.
func (c *Client) CompanyFeedbacks(ctx context.Context, companyID int64) ([]model.Feedback, error) {
	var rows []wireFeedback
	if err := c.getJSON(ctx, fmt.Sprintf("/feedbacks/%d", companyID), nil, &rows); err != nil {
		return nil, err
	}
	feedbacks := make([]model.Feedback, 0, len(rows))
	for _, row := range rows {
		feedbacks = append(feedbacks, model.Feedback{
			ID:          int64(row.ID),
			CompanyID:   int64(row.CompanyID),
			CompanyName: row.CompanyName,
			Message:     row.Message,
			Score:       int(row.Score),
			Timestamp:   time.UnixMilli(int64(row.Timestamp)),
			UserName:    row.UserName,
		})
	}
	return feedbacks, nil
}

type wireCompany struct {
	ID          wireInt `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
}

// GetCompany returns a venue profile.
func (c *Client) GetCompany(ctx context.Context, companyID int64) (model.Company, error) {
	var row wireCompany
	if err := c.getJSON(ctx, fmt.Sprintf("/companies/%d", companyID), nil, &row); err != nil {
		return model.Company{}, err
	}
	return model.Company{ID: int64(row.ID), Name: row.Name, Description: row.Description}, nil
}
