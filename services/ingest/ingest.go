// Package ingest reads the hand-off artifacts the external scrapers leave
// behind: newline-delimited JSON dumps of raw records per source, and the
// folder of downloaded GPX tracks. Scraping itself lives outside this
// codebase; these adapters only deliver its output into the pipeline.
package ingest

import (
	"encoding/json"
	"io/fs"
	"os"
	"strconv"
	"strings"

	stderrors "errors"

	"github.com/philippdrebes/MSCIDS-CIP02/internal/route"
	"github.com/philippdrebes/MSCIDS-CIP02/pkg/errors"
)

// ReadRecords reads an NDJSON dump of raw records. A missing file means the
// source was not scraped this run and yields an empty batch; a malformed
// line is fatal, a half-read batch would skew the merge.
func ReadRecords(path string, source route.Source) ([]route.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.NewIngest(string(source), "cannot open records dump "+path, err)
	}
	defer f.Close()

	var records []route.RawRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var raw map[string]interface{}
		if err := decoder.Decode(&raw); err != nil {
			return nil, errors.NewIngest(string(source), "malformed record in "+path, err)
		}
		records = append(records, toRawRecord(raw))
	}
	return records, nil
}

// ListGpxFiles returns the GPX file names in dir. Only the names matter;
// track contents were already measured upstream.
func ListGpxFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.NewIngest("", "cannot list gpx folder "+dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".gpx") {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

// toRawRecord flattens a decoded JSON object into the string field map the
// unifier consumes. Scrapers mostly dump strings, but GPX-derived numbers
// arrive as JSON numbers.
func toRawRecord(raw map[string]interface{}) route.RawRecord {
	record := make(route.RawRecord, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			record[key] = v
		case float64:
			record[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			record[key] = strconv.FormatBool(v)
		case nil:
			record[key] = ""
		default:
			b, _ := json.Marshal(v)
			record[key] = string(b)
		}
	}
	return record
}
