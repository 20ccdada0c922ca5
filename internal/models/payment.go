package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentLog records a successful subscription checkout for bookkeeping.
// The subscription itself lives in Stripe; webhooks and the list endpoint
// read it back from there.
type PaymentLog struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount    float64   `json:"amount"`
	Details   string    `gorm:"type:varchar(100)" json:"details"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (p *PaymentLog) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type SubscribeRequest struct {
	Plan            string `json:"plan" binding:"required,oneof=monthly yearly"`
	PaymentMethodID string `json:"payment_method_id" binding:"required"`
}

type SubscriptionInfo struct {
	ID                 string  `json:"id"`
	Status             string  `json:"status"`
	CurrentPeriodStart string  `json:"current_period_start"`
	CancelAtPeriodEnd  bool    `json:"cancel_at_period_end"`
	PriceID            string  `json:"price_id"`
	Amount             float64 `json:"amount"`
	Currency           string  `json:"currency"`
}
