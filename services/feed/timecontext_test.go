package feed

import (
	"testing"
	"time"

	"tastetrail/models"

	"github.com/stretchr/testify/assert"
)

func TestContextForHour(t *testing.T) {
	cases := []struct {
		hour int
		want models.TimeContext
	}{
		{6, models.TimeContextBreakfast},
		{9, models.TimeContextBreakfast},
		{10, models.TimeContextAnytime},
		{11, models.TimeContextLunch},
		{13, models.TimeContextLunch},
		{14, models.TimeContextAnytime},
		{17, models.TimeContextDinner},
		{20, models.TimeContextDinner},
		{21, models.TimeContextLateNight},
		{23, models.TimeContextLateNight},
		{0, models.TimeContextLateNight},
		{1, models.TimeContextLateNight},
		{2, models.TimeContextAnytime},
		{4, models.TimeContextAnytime},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, ContextForHour(tc.hour), "hour %d", tc.hour)
	}
}

func TestCurrentContextUsesHour(t *testing.T) {
	morning := time.Date(2025, 3, 10, 7, 30, 0, 0, time.Local)
	assert.Equal(t, models.TimeContextBreakfast, CurrentContext(morning))
}

func TestCategoriesForUnknownContextFallsBack(t *testing.T) {
	assert.Equal(t, CategoriesFor(models.TimeContextAnytime), CategoriesFor(models.TimeContext("BOGUS")))
	assert.Contains(t, CategoriesFor(models.TimeContextBreakfast), "Tea Shop")
}

func TestDescriptionFor(t *testing.T) {
	assert.Equal(t, "Great lunch spots", DescriptionFor(models.TimeContextLunch))
	assert.Equal(t, "Available anytime", DescriptionFor(models.TimeContext("BOGUS")))
}
