package models

import "time"

// TimeContext is the meal/time slot the current hour falls into.
type TimeContext string

const (
	TimeContextBreakfast TimeContext = "BREAKFAST"
	TimeContextLunch     TimeContext = "LUNCH"
	TimeContextDinner    TimeContext = "DINNER"
	TimeContextLateNight TimeContext = "LATE_NIGHT"
	TimeContextAnytime   TimeContext = "ANYTIME"
)

// LabelMm returns the Myanmar label for the time context.
func (t TimeContext) LabelMm() string {
	switch t {
	case TimeContextBreakfast:
		return "နံနက်စာ"
	case TimeContextLunch:
		return "နေ့လည်စာ"
	case TimeContextDinner:
		return "ညစာ"
	case TimeContextLateNight:
		return "ညဉ့်နက်စာ"
	default:
		return "အချိန်မရွေး"
	}
}

// UserSegment is a user's engagement classification.
type UserSegment string

const (
	SegmentNewUser   UserSegment = "NEW_USER"
	SegmentCasual    UserSegment = "CASUAL"
	SegmentPowerUser UserSegment = "POWER_USER"
	SegmentDormant   UserSegment = "DORMANT"
)

// ShopBadge is a deterministic per-shop annotation shown in the feed.
type ShopBadge string

const (
	BadgeTrendingNow   ShopBadge = "TRENDING_NOW"
	BadgeRisingStar    ShopBadge = "RISING_STAR"
	BadgeHiddenGem     ShopBadge = "HIDDEN_GEM"
	BadgeNew           ShopBadge = "NEW"
	BadgeCrowdFavorite ShopBadge = "CROWD_FAVORITE"
)

// LabelMm returns the Myanmar label for the badge.
func (b ShopBadge) LabelMm() string {
	switch b {
	case BadgeTrendingNow:
		return "ရေပန်းစားနေသည်"
	case BadgeRisingStar:
		return "အလားအလာရှိ"
	case BadgeHiddenGem:
		return "ရတနာသိုက်"
	case BadgeNew:
		return "အသစ်"
	case BadgeCrowdFavorite:
		return "လူကြိုက်များ"
	default:
		return ""
	}
}

// FeedSectionType tags one of the four themed sections.
type FeedSectionType string

const (
	SectionForYou           FeedSectionType = "FOR_YOU"
	SectionTrendingNearby   FeedSectionType = "TRENDING_NEARBY"
	SectionBasedOnFavorites FeedSectionType = "BASED_ON_FAVORITES"
	SectionNewShops         FeedSectionType = "NEW_SHOPS"
)

// FeedItem is one shop annotated for presentation in a feed section.
type FeedItem struct {
	ID             int64       `json:"id"`
	Name           string      `json:"name"`
	NameMm         string      `json:"nameMm,omitempty"`
	Slug           string      `json:"slug"`
	Category       string      `json:"category"`
	SubCategory    string      `json:"subCategory,omitempty"`
	Address        string      `json:"address,omitempty"`
	Township       string      `json:"township,omitempty"`
	Latitude       float64     `json:"latitude"`
	Longitude      float64     `json:"longitude"`
	RatingAvg      float64     `json:"ratingAvg"`
	RatingCount    int         `json:"ratingCount"`
	TrendingScore  float64     `json:"trendingScore"`
	HasDelivery    bool        `json:"hasDelivery"`
	HasParking     bool        `json:"hasParking"`
	HasWifi        bool        `json:"hasWifi"`
	DistanceKm     *float64    `json:"distanceKm,omitempty"`
	Badges         []ShopBadge `json:"badges"`
	BadgeLabelsMm  []string    `json:"badgeLabelsMm"`
	RelevanceScore float64     `json:"relevanceScore"`
	MatchReason    string      `json:"matchReason"`
	MatchReasonMm  string      `json:"matchReasonMm,omitempty"`
}

// FeedSection is one themed, ranked sub-list within a feed response.
type FeedSection struct {
	Title       string          `json:"title"`
	TitleMm     string          `json:"titleMm,omitempty"`
	Description string          `json:"description"`
	SectionType FeedSectionType `json:"sectionType"`
	Shops       []FeedItem      `json:"shops"`
	TotalCount  int             `json:"totalCount"`
}

// FeedMetadata describes how a feed was generated.
type FeedMetadata struct {
	FeedID       string      `json:"feedId"`
	GeneratedAt  time.Time   `json:"generatedAt"`
	UserSegment  UserSegment `json:"userSegment"`
	TimeContext  TimeContext `json:"timeContext"`
	LocationUsed bool        `json:"locationUsed"`
	Latitude     *float64    `json:"latitude,omitempty"`
	Longitude    *float64    `json:"longitude,omitempty"`
	RadiusKm     float64     `json:"radiusKm"`
}

// PersonalizedFeed is the full four-section feed response.
type PersonalizedFeed struct {
	ForYouNow        FeedSection  `json:"forYouNow"`
	TrendingNearby   FeedSection  `json:"trendingNearby"`
	BasedOnFavorites FeedSection  `json:"basedOnFavorites"`
	NewShops         FeedSection  `json:"newShops"`
	Metadata         FeedMetadata `json:"metadata"`
}
