package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philippdrebes/MSCIDS-CIP02/internal/route"
	"github.com/philippdrebes/MSCIDS-CIP02/pkg/errors"
)

func TestReadRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "komoot.ndjson")

	dump := `{"title":"Pilatus loop","link":"https://www.komoot.com/tour/1","distance_gpx":13.42}
{"title":"Rigi Panoramaweg","link":"https://www.komoot.com/tour/2","distance_gpx":8}
`
	require.NoError(t, os.WriteFile(path, []byte(dump), 0644))

	records, err := ReadRecords(path, route.SourceKomoot)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Pilatus loop", records[0]["title"])
	assert.Equal(t, "13.42", records[0]["distance_gpx"], "JSON numbers flatten to strings")
	assert.Equal(t, "8", records[1]["distance_gpx"])
}

func TestReadRecordsMissingFile(t *testing.T) {
	records, err := ReadRecords(filepath.Join(t.TempDir(), "nope.ndjson"), route.SourceSac)
	assert.NoError(t, err, "a source that was not scraped is an empty batch, not an error")
	assert.Nil(t, records)
}

func TestReadRecordsMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.ndjson")
	require.NoError(t, os.WriteFile(path, []byte(`{"title":`), 0644))

	_, err := ReadRecords(path, route.SourceSac)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeIngest))
}

func TestListGpxFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Pilatus Runde.gpx"), []byte("<gpx/>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.gpx"), 0755))

	files, err := ListGpxFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pilatus Runde.gpx"}, files)
}

func TestListGpxFilesMissingDir(t *testing.T) {
	files, err := ListGpxFiles(filepath.Join(t.TempDir(), "nope"))
	assert.NoError(t, err)
	assert.Nil(t, files)
}
