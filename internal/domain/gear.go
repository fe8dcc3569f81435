package domain

type GearStatus string

const (
	GearStatusAvailable GearStatus = "available"
	GearStatusRented    GearStatus = "rented"
	GearStatusUnlisted  GearStatus = "unlisted"
)

type GearCondition string

const (
	GearConditionNew      GearCondition = "new"
	GearConditionLikeNew  GearCondition = "like_new"
	GearConditionGood     GearCondition = "good"
	GearConditionFair     GearCondition = "fair"
	GearConditionHeavyUse GearCondition = "heavy_use"
)

type Gear struct {
	ID             int32         `json:"id"`
	OwnerID        int32         `json:"owner_id"`
	Name           string        `json:"name"`
	Category       string        `json:"category"`
	Description    string        `json:"description"`
	Condition      GearCondition `json:"condition"`
	DailyRateCents int32         `json:"daily_rate_cents"`
	Status         GearStatus    `json:"status"`
	SavesCount     int32         `json:"saves_count"`
	CreatedOn      string        `json:"created_on"`
	UpdatedOn      string        `json:"updated_on"`
}

// GearSummary is the compact shape embedded in booking and conversation
// listings.
type GearSummary struct {
	ID             int32  `json:"id"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	DailyRateCents int32  `json:"daily_rate_cents"`
}
