// Package unify maps source-native raw records onto the canonical Route
// schema. Each source brings its own field names, units and category
// vocabulary; the unifier applies the source's SourceSpec and fails fast on
// the first record that cannot be mapped cleanly.
package unify

import (
	"strings"

	"github.com/philippdrebes/MSCIDS-CIP02/internal/route"
	"github.com/philippdrebes/MSCIDS-CIP02/internal/units"
	"github.com/philippdrebes/MSCIDS-CIP02/pkg/errors"
)

// Unifier maps raw records of one source to canonical routes
type Unifier struct {
	spec SourceSpec
}

// New creates a Unifier for the given source spec
func New(spec SourceSpec) *Unifier {
	return &Unifier{spec: spec}
}

// Unify maps a batch of raw records using the built-in spec for the source
func Unify(records []route.RawRecord, source route.Source) ([]route.Route, error) {
	spec, err := SpecFor(source)
	if err != nil {
		return nil, err
	}
	return New(spec).Unify(records)
}

// Unify maps a batch of raw records to canonical routes. The batch fails as
// a whole on the first unmappable record: a partially-wrong canonical set
// would silently skew the downstream comparison.
func (u *Unifier) Unify(records []route.RawRecord) ([]route.Route, error) {
	routes := make([]route.Route, 0, len(records))
	seenLinks := make(map[string]struct{}, len(records))

	for _, record := range records {
		r, err := u.unifyRecord(record)
		if err != nil {
			return nil, err
		}

		if _, dup := seenLinks[r.Link]; dup {
			return nil, errors.NewSchemaValidation(string(u.spec.Source), "link",
				"duplicate link "+r.Link+" within source")
		}
		seenLinks[r.Link] = struct{}{}

		routes = append(routes, *r)
	}
	return routes, nil
}

// unifyRecord maps a single raw record. Extra source-specific fields are
// dropped; the canonical field set is fixed.
func (u *Unifier) unifyRecord(record route.RawRecord) (*route.Route, error) {
	source := string(u.spec.Source)
	fields := u.spec.Fields

	title := strings.TrimSpace(record[fields.Title])
	if title == "" {
		return nil, errors.NewSchemaValidation(source, "title", "required field missing")
	}
	link := strings.TrimSpace(record[fields.Link])
	if link == "" {
		return nil, errors.NewSchemaValidation(source, "link", "required field missing")
	}

	rawDifficulty := strings.TrimSpace(record[fields.Difficulty])
	if rawDifficulty == "" {
		return nil, errors.NewSchemaValidation(source, "difficulty", "required field missing")
	}
	difficulty, err := units.MapLevel(rawDifficulty, u.spec.DifficultyVocab, source, "difficulty")
	if err != nil {
		return nil, err
	}

	r := &route.Route{
		Title:      title,
		Source:     u.spec.Source,
		Difficulty: difficulty,
		Link:       link,
	}

	if fields.Fitness != "" {
		if raw := strings.TrimSpace(record[fields.Fitness]); raw != "" && !strings.EqualFold(raw, "na") {
			fitness, err := units.MapLevel(raw, u.spec.FitnessVocab, source, "fitness")
			if err != nil {
				return nil, err
			}
			r.Fitness = fitness
		}
	}

	if r.DistanceKm, err = units.Distance(record[fields.Distance], u.spec.DistanceUnit); err != nil {
		return nil, err
	}
	if r.ElevationUpM, err = units.Elevation(record[fields.ElevationUp], u.spec.ElevationUnit); err != nil {
		return nil, err
	}
	if r.ElevationDownM, err = units.Elevation(record[fields.ElevationDown], u.spec.ElevationUnit); err != nil {
		return nil, err
	}
	if r.Duration, err = u.totalDuration(record); err != nil {
		return nil, err
	}

	if fields.GpxFile != "" {
		r.GpxFile = strings.TrimSpace(record[fields.GpxFile])
	}

	return r, nil
}

// totalDuration sums the configured duration components. A missing component
// counts as zero; the total is nil only when every component is missing.
func (u *Unifier) totalDuration(record route.RawRecord) (*route.Duration, error) {
	total := route.Duration(0)
	present := false
	for _, field := range u.spec.Fields.Duration {
		d, err := units.ParseDuration(record[field])
		if err != nil {
			return nil, err
		}
		if d != nil {
			total += *d
			present = true
		}
	}
	if !present {
		return nil, nil
	}
	return &total, nil
}
