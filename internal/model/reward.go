package model

// Reward is a catalog entry redeemable for one loyalty point.
type Reward struct {
	ID          int64
	Description string
}

// RedeemedReward is the receipt generated when a reward is redeemed.
// The code is unique and presented at the venue.
type RedeemedReward struct {
	Code        string
	Description string
}
