package domain

import (
	"context"
	"time"
)

// CatalogItem is a published catalog entry as seen by the chat subsystem
type CatalogItem struct {
	ID           string  `bson:"_id" json:"id"`
	Title        string  `bson:"title" json:"title"`
	Description  string  `bson:"description" json:"description"`
	Category     string  `bson:"category" json:"category"`
	Slug         string  `bson:"slug" json:"slug"`
	Price        float64 `bson:"price" json:"price"`
	Currency     string  `bson:"currency" json:"currency"`
	Availability int     `bson:"-" json:"availability"`

	// Stock is nil for event-type items, which track attendees instead
	Stock            *int `bson:"stock,omitempty" json:"-"`
	MaxAttendees     int  `bson:"max_attendees,omitempty" json:"-"`
	CurrentAttendees int  `bson:"current_attendees,omitempty" json:"-"`
}

// DiscountType is the kind of reduction a promotion applies
type DiscountType string

const (
	DiscountPercentage  DiscountType = "percentage"
	DiscountFixedAmount DiscountType = "fixed_amount"
)

// Promotion is an active discount code
type Promotion struct {
	Code          string       `bson:"code" json:"code"`
	Name          string       `bson:"name" json:"name"`
	DiscountType  DiscountType `bson:"discount_type" json:"discount_type"`
	DiscountValue float64      `bson:"discount_value" json:"discount_value"`
	StartDate     time.Time    `bson:"start_date" json:"start_date"`
	EndDate       time.Time    `bson:"end_date" json:"end_date"`
}

// CatalogRepository lists published, active catalog items.
// Fetched fresh per context build; the chat core never caches it.
type CatalogRepository interface {
	ListPublished(ctx context.Context) ([]CatalogItem, error)
}

// PromotionRepository lists promotions whose validity window holds at now
type PromotionRepository interface {
	ListActive(ctx context.Context, now time.Time) ([]Promotion, error)
}
