package models

// GeoPoint represents a GeoJSON Point.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`               // Always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
}

// NewGeoPoint builds a GeoJSON point from a latitude/longitude pair.
func NewGeoPoint(lat, lon float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lon, lat}}
}

// Latitude returns the latitude component, or 0 if the point is malformed.
func (p GeoPoint) Latitude() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

// Longitude returns the longitude component, or 0 if the point is malformed.
func (p GeoPoint) Longitude() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[0]
}

// SentinelShopID is the placeholder id inserted into exclusion sets so that
// "id not in" queries always receive a non-empty operand.
const SentinelShopID int64 = -1

// NonEmptyIDSet is a set of shop ids that is guaranteed never to be empty
// when handed to an exclusion query. The sentinel-insertion rule lives here
// and nowhere else.
type NonEmptyIDSet struct {
	ids map[int64]struct{}
}

// NewNonEmptyIDSet builds a set from the given ids.
func NewNonEmptyIDSet(ids ...int64) NonEmptyIDSet {
	s := NonEmptyIDSet{ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Add inserts an id into the set.
func (s *NonEmptyIDSet) Add(id int64) {
	if s.ids == nil {
		s.ids = make(map[int64]struct{})
	}
	s.ids[id] = struct{}{}
}

// Contains reports whether the set holds the given id.
func (s NonEmptyIDSet) Contains(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of real (non-sentinel) ids in the set.
func (s NonEmptyIDSet) Len() int {
	return len(s.ids)
}

// IDs returns the set contents for use in an exclusion query. The sentinel
// id is appended when the set is empty.
func (s NonEmptyIDSet) IDs() []int64 {
	if len(s.ids) == 0 {
		return []int64{SentinelShopID}
	}
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}
