package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonEmptyIDSetSentinelWhenEmpty(t *testing.T) {
	var s NonEmptyIDSet
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, []int64{SentinelShopID}, s.IDs())
}

func TestNonEmptyIDSetAddAndContains(t *testing.T) {
	s := NewNonEmptyIDSet()
	s.Add(3)
	s.Add(7)
	s.Add(3)

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(3))
	assert.True(t, s.Contains(7))
	assert.False(t, s.Contains(SentinelShopID))
	assert.ElementsMatch(t, []int64{3, 7}, s.IDs())
}

func TestNonEmptyIDSetAddOnZeroValue(t *testing.T) {
	var s NonEmptyIDSet
	s.Add(42)
	assert.True(t, s.Contains(42))
	assert.Equal(t, []int64{42}, s.IDs())
}

func TestGeoPointOrdering(t *testing.T) {
	p := NewGeoPoint(16.77, 96.15)
	assert.Equal(t, "Point", p.Type)
	assert.Equal(t, []float64{96.15, 16.77}, p.Coordinates)
	assert.Equal(t, 16.77, p.Latitude())
	assert.Equal(t, 96.15, p.Longitude())
}

func TestGeoPointMalformed(t *testing.T) {
	var p GeoPoint
	assert.Equal(t, 0.0, p.Latitude())
	assert.Equal(t, 0.0, p.Longitude())
}
