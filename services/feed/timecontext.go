package feed

import (
	"time"

	"tastetrail/models"
)

// timeContextCategories maps each time context to the shop categories that
// fit it. Static data, never mutated.
var timeContextCategories = map[models.TimeContext][]string{
	models.TimeContextBreakfast: {
		"Cafe", "Coffee Shop", "Bakery", "Breakfast", "Tea Shop",
	},
	models.TimeContextLunch: {
		"Restaurant", "Fast Food", "Noodle Shop", "Rice Shop",
		"Cafe", "Food Court", "Lunch",
	},
	models.TimeContextDinner: {
		"Restaurant", "Fine Dining", "BBQ", "Hot Pot",
		"Seafood", "Steakhouse", "Dinner",
	},
	models.TimeContextLateNight: {
		"Bar", "Pub", "Night Club", "Late Night Eatery",
		"24/7", "Street Food",
	},
	models.TimeContextAnytime: {
		"Cafe", "Restaurant", "Fast Food", "Dessert",
		"Ice Cream", "Snacks",
	},
}

// timeContextDescriptions are the section blurbs per context.
var timeContextDescriptions = map[models.TimeContext]string{
	models.TimeContextBreakfast: "Perfect for breakfast",
	models.TimeContextLunch:     "Great lunch spots",
	models.TimeContextDinner:    "Dinner recommendations",
	models.TimeContextLateNight: "Open late night",
	models.TimeContextAnytime:   "Available anytime",
}

// ContextForHour maps an hour of day to its time context. Late night wraps
// midnight (21:00 through 01:59).
func ContextForHour(hour int) models.TimeContext {
	switch {
	case hour >= 6 && hour < 10:
		return models.TimeContextBreakfast
	case hour >= 11 && hour < 14:
		return models.TimeContextLunch
	case hour >= 17 && hour < 21:
		return models.TimeContextDinner
	case hour >= 21 || hour < 2:
		return models.TimeContextLateNight
	default:
		return models.TimeContextAnytime
	}
}

// CurrentContext returns the time context for the given moment.
func CurrentContext(now time.Time) models.TimeContext {
	return ContextForHour(now.Hour())
}

// CategoriesFor returns the category set for a time context. The returned
// slice must not be modified.
func CategoriesFor(context models.TimeContext) []string {
	if cats, ok := timeContextCategories[context]; ok {
		return cats
	}
	return timeContextCategories[models.TimeContextAnytime]
}

// DescriptionFor returns a human-readable blurb for a time context.
func DescriptionFor(context models.TimeContext) string {
	if d, ok := timeContextDescriptions[context]; ok {
		return d
	}
	return timeContextDescriptions[models.TimeContextAnytime]
}
