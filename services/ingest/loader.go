package ingest

import (
	"github.com/philippdrebes/MSCIDS-CIP02/internal/pipeline"
	"github.com/philippdrebes/MSCIDS-CIP02/internal/route"
	"github.com/philippdrebes/MSCIDS-CIP02/logger"
)

// Loader assembles one pipeline batch from the scraper hand-off locations
type Loader struct {
	komootFile       string
	sacFile          string
	schweizmobilFile string
	gpxDir           string
	log              *logger.Logger
}

// NewLoader creates a Loader over the configured dump locations
func NewLoader(komootFile, sacFile, schweizmobilFile, gpxDir string) *Loader {
	return &Loader{
		komootFile:       komootFile,
		sacFile:          sacFile,
		schweizmobilFile: schweizmobilFile,
		gpxDir:           gpxDir,
		log:              logger.ForIngest(),
	}
}

// Load reads all source dumps and the GPX candidate listing
func (l *Loader) Load() (pipeline.Batch, error) {
	var batch pipeline.Batch
	var err error

	if batch.Komoot, err = ReadRecords(l.komootFile, route.SourceKomoot); err != nil {
		return pipeline.Batch{}, err
	}
	if batch.Sac, err = ReadRecords(l.sacFile, route.SourceSac); err != nil {
		return pipeline.Batch{}, err
	}
	if batch.Schweizmobil, err = ReadRecords(l.schweizmobilFile, route.SourceSchweizmobil); err != nil {
		return pipeline.Batch{}, err
	}
	if batch.GpxCandidates, err = ListGpxFiles(l.gpxDir); err != nil {
		return pipeline.Batch{}, err
	}

	l.log.Info().
		Int("komoot", len(batch.Komoot)).
		Int("sac", len(batch.Sac)).
		Int("schweizmobil", len(batch.Schweizmobil)).
		Int("gpx_files", len(batch.GpxCandidates)).
		Msg("Loaded scraper hand-off")

	return batch, nil
}
