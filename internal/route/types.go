package route

import "fmt"

// Source identifies the listing site a record was scraped from
type Source string

const (
	SourceKomoot       Source = "komoot"
	SourceSac          Source = "sac"
	SourceSchweizmobil Source = "schweizmobil"
)

// Level is a canonical difficulty or fitness rating.
// Every source vocabulary converges on exactly these three values.
type Level string

const (
	LevelEasy      Level = "easy"
	LevelMedium    Level = "medium"
	LevelDifficult Level = "difficult"
)

// Duration is a hiking time in minutes
type Duration int

// String renders the duration as H:MM
func (d Duration) String() string {
	return fmt.Sprintf("%d:%02d", int(d)/60, int(d)%60)
}

// Minutes returns the duration as a plain minute count
func (d Duration) Minutes() int {
	return int(d)
}

// RawRecord is a scraped field map as delivered by an external scraper.
// Field names and value encodings are source specific; a record is consumed
// exactly once by the unifier and then discarded.
type RawRecord map[string]string

// Route is the canonical representation all sources are mapped into
type Route struct {
	Title          string    `json:"title"`
	Source         Source    `json:"source"`
	DistanceKm     *float64  `json:"distance_km,omitempty"`
	ElevationUpM   *float64  `json:"elevation_up_m,omitempty"`
	ElevationDownM *float64  `json:"elevation_down_m,omitempty"`
	Duration       *Duration `json:"duration_min,omitempty"`
	Difficulty     Level     `json:"difficulty"`
	Fitness        Level     `json:"fitness,omitempty"`
	Link           string    `json:"link"`
	GpxFile        string    `json:"gpx_file,omitempty"`
}

// ID returns the natural identifier of a route. Links are unique within a
// source but not comparable across sources, so the source is part of the key.
func (r *Route) ID() string {
	return string(r.Source) + "|" + r.Link
}
