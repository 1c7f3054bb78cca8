package models

import "time"

// Shop is a listed business in the catalog. TrendingScore is written only by
// the trending score engine; every other component treats it as read-only.
type Shop struct {
	ID            int64     `bson:"id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	NameMm        string    `bson:"nameMm,omitempty" json:"nameMm,omitempty"`
	Slug          string    `bson:"slug" json:"slug"`
	Category      string    `bson:"category" json:"category"`
	SubCategory   string    `bson:"subCategory,omitempty" json:"subCategory,omitempty"`
	LocationGeo   GeoPoint  `bson:"locationGeo" json:"locationGeo"`
	Address       string    `bson:"address,omitempty" json:"address,omitempty"`
	Township      string    `bson:"township,omitempty" json:"township,omitempty"`
	DistrictID    int64     `bson:"districtId,omitempty" json:"districtId,omitempty"`
	RatingAvg     float64   `bson:"ratingAvg" json:"ratingAvg"`
	RatingCount   int       `bson:"ratingCount" json:"ratingCount"`
	ViewCount     int       `bson:"viewCount" json:"viewCount"`
	TrendingScore float64   `bson:"trendingScore" json:"trendingScore"`
	HasDelivery   bool      `bson:"hasDelivery" json:"hasDelivery"`
	HasParking    bool      `bson:"hasParking" json:"hasParking"`
	HasWifi       bool      `bson:"hasWifi" json:"hasWifi"`
	IsHalal       bool      `bson:"isHalal" json:"isHalal"`
	IsVegetarian  bool      `bson:"isVegetarian" json:"isVegetarian"`
	IsActive      bool      `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// AgeDays returns whole days since the shop was created, relative to now.
func (s Shop) AgeDays(now time.Time) int {
	if s.CreatedAt.IsZero() {
		return int(^uint(0) >> 1)
	}
	return int(now.Sub(s.CreatedAt).Hours() / 24)
}

// District is one entry in the geographic hierarchy.
type District struct {
	ID          int64    `bson:"id" json:"id"`
	CityID      int64    `bson:"cityId" json:"cityId"`
	NameEn      string   `bson:"nameEn" json:"nameEn"`
	NameMm      string   `bson:"nameMm,omitempty" json:"nameMm,omitempty"`
	Slug        string   `bson:"slug" json:"slug"`
	LocationGeo GeoPoint `bson:"locationGeo" json:"locationGeo"`
	Active      bool     `bson:"active" json:"active"`
}

// City is the top level of the geographic hierarchy.
type City struct {
	ID     int64  `bson:"id" json:"id"`
	NameEn string `bson:"nameEn" json:"nameEn"`
	NameMm string `bson:"nameMm,omitempty" json:"nameMm,omitempty"`
	Slug   string `bson:"slug" json:"slug"`
	Active bool   `bson:"active" json:"active"`
}
