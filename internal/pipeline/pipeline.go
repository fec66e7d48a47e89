// Package pipeline wires the unification stages into one batch run: raw
// records per source go through GPX matching (Komoot only) and schema
// unification, the canonical sets are concatenated and the merged set is
// annotated with duplicate candidates. The run is synchronous and fails
// fast; a batch either completes or stops at the first data-quality error.
package pipeline

import (
	"github.com/philippdrebes/MSCIDS-CIP02/internal/dupes"
	"github.com/philippdrebes/MSCIDS-CIP02/internal/match"
	"github.com/philippdrebes/MSCIDS-CIP02/internal/route"
	"github.com/philippdrebes/MSCIDS-CIP02/internal/unify"
	"github.com/philippdrebes/MSCIDS-CIP02/logger"
)

// Batch holds one fully-materialized run's input: the raw records of each
// source and the shared GPX candidate pool
type Batch struct {
	Komoot        []route.RawRecord
	Sac           []route.RawRecord
	Schweizmobil  []route.RawRecord
	GpxCandidates []string
}

// Result is the unified, annotated dataset handed to downstream delivery
type Result struct {
	Routes     []route.Route
	Duplicates map[string][]string
}

// Pipeline runs the batch transformation
type Pipeline struct {
	matcher  *match.Matcher
	detector *dupes.Detector
	log      *logger.Logger
}

// New creates a Pipeline
func New(matcher *match.Matcher, detector *dupes.Detector) *Pipeline {
	return &Pipeline{
		matcher:  matcher,
		detector: detector,
		log:      logger.ForPipeline(),
	}
}

// Run executes one batch end to end
func (p *Pipeline) Run(batch Batch) (*Result, error) {
	p.matchGpxFiles(batch.Komoot, batch.GpxCandidates)

	var routes []route.Route
	for _, src := range []struct {
		source  route.Source
		records []route.RawRecord
	}{
		{route.SourceKomoot, batch.Komoot},
		{route.SourceSac, batch.Sac},
		{route.SourceSchweizmobil, batch.Schweizmobil},
	} {
		unified, err := unify.Unify(src.records, src.source)
		if err != nil {
			return nil, err
		}
		p.log.Info().
			Str("source", string(src.source)).
			Int("records", len(unified)).
			Msg("Unified source batch")
		routes = append(routes, unified...)
	}

	duplicates := p.detector.Find(routes)

	flagged := 0
	for _, candidates := range duplicates {
		if len(candidates) > 1 {
			flagged++
		}
	}
	p.log.Info().
		Int("routes", len(routes)).
		Int("duplicate_flagged", flagged).
		Msg("Merged sources")

	return &Result{Routes: routes, Duplicates: duplicates}, nil
}

// matchGpxFiles binds GPX file names into the Komoot raw records in place.
// Record order decides who gets first pick from the pool.
func (p *Pipeline) matchGpxFiles(records []route.RawRecord, candidates []string) {
	if len(records) == 0 {
		return
	}

	p.log.Info().
		Int("gpx_files", len(candidates)).
		Int("routes", len(records)).
		Msg("Matching gpx files to routes")

	titles := make([]string, len(records))
	for i, record := range records {
		titles[i] = record["title"]
	}

	matches := p.matcher.Match(titles, candidates)
	for i, record := range records {
		record["gpx_file"] = matches[i]
	}
}
