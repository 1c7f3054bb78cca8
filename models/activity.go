package models

import "time"

// ActivityType identifies one kind of behavioral signal from the activity log.
type ActivityType string

const (
	ActivitySearchQuery     ActivityType = "SEARCH_QUERY"
	ActivityViewShop        ActivityType = "VIEW_SHOP"
	ActivityViewCategory    ActivityType = "VIEW_CATEGORY"
	ActivityViewNearby      ActivityType = "VIEW_NEARBY"
	ActivityClickDirections ActivityType = "CLICK_DIRECTIONS"
	ActivityClickCall       ActivityType = "CLICK_CALL"
	ActivityClickWebsite    ActivityType = "CLICK_WEBSITE"
	ActivityClickShare      ActivityType = "CLICK_SHARE"
)

// ConversionActivityTypes are the high-intent signals that count as
// conversions in trending score computation.
var ConversionActivityTypes = []ActivityType{
	ActivityClickDirections,
	ActivityClickCall,
	ActivityClickShare,
}

// UserActivity is a read-only view of one activity-log event. The engine only
// ever consumes these in aggregate (counts per shop per time window).
type UserActivity struct {
	ID           int64        `bson:"id" json:"id"`
	UserID       int64        `bson:"userId,omitempty" json:"userId,omitempty"`
	DeviceID     string       `bson:"deviceId,omitempty" json:"deviceId,omitempty"`
	ActivityType ActivityType `bson:"activityType" json:"activityType"`
	TargetID     int64        `bson:"targetId,omitempty" json:"targetId,omitempty"`
	Category     string       `bson:"category,omitempty" json:"category,omitempty"`
	CreatedAt    time.Time    `bson:"createdAt" json:"createdAt"`
}
