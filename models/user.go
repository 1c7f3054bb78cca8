package models

import "time"

// User holds the profile fields the feed engine reads. Account management is
// owned by a separate service; this engine never writes users.
type User struct {
	ID           int64     `bson:"id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	IsHalal      bool      `bson:"isHalal" json:"isHalal"`
	IsVegetarian bool      `bson:"isVegetarian" json:"isVegetarian"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// Favorite links a user to a shop. The shop's id and category are
// denormalized onto the document so affinity derivation needs no join.
type Favorite struct {
	ID           int64     `bson:"id" json:"id"`
	UserID       int64     `bson:"userId" json:"userId"`
	ShopID       int64     `bson:"shopId" json:"shopId"`
	ShopCategory string    `bson:"shopCategory" json:"shopCategory"`
	Notes        string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// ShopReview is a user's review of a shop, with the shop's id and category
// denormalized the same way favorites are.
type ShopReview struct {
	ID           int64     `bson:"id" json:"id"`
	UserID       int64     `bson:"userId" json:"userId"`
	ShopID       int64     `bson:"shopId" json:"shopId"`
	ShopCategory string    `bson:"shopCategory" json:"shopCategory"`
	Rating       int       `bson:"rating" json:"rating"` // 1..5
	Comment      string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// EngagementStats are the aggregate counts consumed by user segmentation,
// fetched in a single round trip. Favorites includes menu-item favorites.
type EngagementStats struct {
	TotalActivities  int64 `bson:"totalActivities" json:"totalActivities"`
	TotalFavorites   int64 `bson:"totalFavorites" json:"totalFavorites"`
	TotalReviews     int64 `bson:"totalReviews" json:"totalReviews"`
	RecentActivities int64 `bson:"recentActivities" json:"recentActivities"`
}
