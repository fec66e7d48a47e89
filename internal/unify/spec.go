package unify

import (
	"github.com/philippdrebes/MSCIDS-CIP02/internal/route"
	"github.com/philippdrebes/MSCIDS-CIP02/internal/units"
	"github.com/philippdrebes/MSCIDS-CIP02/pkg/errors"
)

// Fields names the source-native field for each canonical slot. An empty
// name means the source does not report that slot. Duration lists one or
// more components; multiple components are parsed separately and summed.
type Fields struct {
	Title         string
	Link          string
	Distance      string
	ElevationUp   string
	ElevationDown string
	Duration      []string
	Difficulty    string
	Fitness       string
	GpxFile       string
}

// SourceSpec is the complete mapping configuration for one source: field
// renames, the units raw values are scraped in, and the vocabulary tables
// for difficulty and fitness. Specs are plain values passed into the
// unifier, so tests can inject their own.
type SourceSpec struct {
	Source          route.Source
	Fields          Fields
	DistanceUnit    units.Unit
	ElevationUnit   units.Unit
	DifficultyVocab map[string]route.Level
	FitnessVocab    map[string]route.Level
}

// SpecFor returns the built-in mapping configuration for a source
func SpecFor(source route.Source) (SourceSpec, error) {
	switch source {
	case route.SourceKomoot:
		return komootSpec(), nil
	case route.SourceSac:
		return sacSpec(), nil
	case route.SourceSchweizmobil:
		return schweizmobilSpec(), nil
	}
	return SourceSpec{}, errors.NewConfiguration("unknown source "+string(source), nil)
}

// komootSpec maps the komoot.com tour pages. Komoot scrapes arrive in
// imperial units. The distance slot reads the GPX-derived track length, not
// the scraped label: the label is a coarse author-entered value, the track
// length is measured.
func komootSpec() SourceSpec {
	vocab := map[string]route.Level{
		"Easy":         route.LevelEasy,
		"Intermediate": route.LevelMedium,
		"Expert":       route.LevelDifficult,
	}
	return SourceSpec{
		Source: route.SourceKomoot,
		Fields: Fields{
			Title:         "title",
			Link:          "link",
			Distance:      "distance_gpx",
			ElevationUp:   "elevation_up",
			ElevationDown: "elevation_down",
			Duration:      []string{"duration"},
			Difficulty:    "difficulty",
			Fitness:       "fitness",
			GpxFile:       "gpx_file",
		},
		DistanceUnit:    units.UnitKilometers,
		ElevationUnit:   units.UnitFeet,
		DifficultyVocab: vocab,
		FitnessVocab:    vocab,
	}
}

// sacSpec maps the sac-cas.ch tour portal. Difficulty comes as the SAC
// T1..T6 hiking scale; fitness is precomputed upstream and already canonical.
// Duration is the sum of the ascent and descent times.
func sacSpec() SourceSpec {
	return SourceSpec{
		Source: route.SourceSac,
		Fields: Fields{
			Title:         "title",
			Link:          "link",
			Distance:      "distance_clean",
			ElevationUp:   "ascent_clean",
			ElevationDown: "descent_clean",
			Duration:      []string{"time_ascent_clean", "time_descent_clean"},
			Difficulty:    "difficulty",
			Fitness:       "fitness",
		},
		DistanceUnit:  units.UnitKilometers,
		ElevationUnit: units.UnitMeters,
		DifficultyVocab: map[string]route.Level{
			"T1": route.LevelEasy,
			"T2": route.LevelMedium,
			"T3": route.LevelMedium,
			"T4": route.LevelDifficult,
			"T5": route.LevelDifficult,
			"T6": route.LevelDifficult,
		},
		FitnessVocab: map[string]route.Level{
			"easy":      route.LevelEasy,
			"medium":    route.LevelMedium,
			"difficult": route.LevelDifficult,
		},
	}
}

// schweizmobilSpec maps the schweizmobil.ch Wanderland routes, which report
// everything metric with German labels.
func schweizmobilSpec() SourceSpec {
	vocab := map[string]route.Level{
		"leicht": route.LevelEasy,
		"mittel": route.LevelMedium,
		"schwer": route.LevelDifficult,
	}
	return SourceSpec{
		Source: route.SourceSchweizmobil,
		Fields: Fields{
			Title:         "name",
			Link:          "url",
			Distance:      "distance",
			ElevationUp:   "altitude_up",
			ElevationDown: "altitude_down",
			Duration:      []string{"duration"},
			Difficulty:    "difficulty_level",
			Fitness:       "fitness_level",
		},
		DistanceUnit:    units.UnitKilometers,
		ElevationUnit:   units.UnitMeters,
		DifficultyVocab: vocab,
		FitnessVocab:    vocab,
	}
}
