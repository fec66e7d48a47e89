package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philippdrebes/MSCIDS-CIP02/internal/dupes"
	"github.com/philippdrebes/MSCIDS-CIP02/internal/match"
	"github.com/philippdrebes/MSCIDS-CIP02/internal/pipeline"
	"github.com/philippdrebes/MSCIDS-CIP02/internal/route"
	"github.com/philippdrebes/MSCIDS-CIP02/services/cache"
	"github.com/philippdrebes/MSCIDS-CIP02/services/publisher"
)

// MockLoader implements BatchLoader for testing
type MockLoader struct {
	batch pipeline.Batch
	err   error
}

// Ensure MockLoader implements BatchLoader
var _ BatchLoader = (*MockLoader)(nil)

func (m *MockLoader) Load() (pipeline.Batch, error) {
	return m.batch, m.err
}

// MockPublisher implements the publisher.Publisher interface for testing
type MockPublisher struct {
	mu       sync.Mutex
	messages map[string][][]byte
	failOn   string
}

// Ensure MockPublisher implements publisher.Publisher
var _ publisher.Publisher = (*MockPublisher)(nil)

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{messages: make(map[string][][]byte)}
}

func (m *MockPublisher) Publish(key string, message []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn != "" && key == m.failOn {
		return errors.New("publish failed")
	}
	messageCopy := make([]byte, len(message))
	copy(messageCopy, message)
	m.messages[key] = append(m.messages[key], messageCopy)
	return nil
}

func (m *MockPublisher) TrimStreams() error {
	return nil
}

func (m *MockPublisher) Close() error {
	return nil
}

// MockCache implements the cache.CacheService interface for testing
type MockCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

// Ensure MockCache implements cache.CacheService
var _ cache.CacheService = (*MockCache)(nil)

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if value, ok := m.items[key]; ok {
		return value, nil
	}
	return nil, errors.New("cache miss")
}

func (m *MockCache) Set(key string, value []byte, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MockCache) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func testBatch() pipeline.Batch {
	return pipeline.Batch{
		Komoot: []route.RawRecord{{
			"title":        "Pilatus loop",
			"link":         "https://www.komoot.com/tour/1",
			"difficulty":   "Easy",
			"distance_gpx": "7.93",
			"duration":     "2:35",
		}},
		Schweizmobil: []route.RawRecord{{
			"name":             "Creux du Van",
			"url":              "https://schweizmobil.ch/route/123",
			"difficulty_level": "mittel",
		}},
		GpxCandidates: []string{"Pilatus Runde.gpx"},
	}
}

func newTestWorker(loader BatchLoader, pub publisher.Publisher, cacheSvc cache.CacheService) *Worker {
	pipe := pipeline.New(match.New(), dupes.New())
	return NewWorker(context.Background(), loader, pipe, pub, cacheSvc)
}

// TestWorkerRunPublishesAnnotatedRoutes tests the happy path
func TestWorkerRunPublishesAnnotatedRoutes(t *testing.T) {
	mockPublisher := NewMockPublisher()
	w := newTestWorker(&MockLoader{batch: testBatch()}, mockPublisher, NewMockCache())

	require.NoError(t, w.Run())

	require.Len(t, mockPublisher.messages["komoot"], 1)
	require.Len(t, mockPublisher.messages["schweizmobil"], 1)

	var msg Message
	require.NoError(t, json.Unmarshal(mockPublisher.messages["komoot"][0], &msg))
	assert.Equal(t, []string{"komoot|https://www.komoot.com/tour/1"}, msg.Duplicates,
		"a distinct title is only its own duplicate candidate")

	published := msg.Route.(map[string]interface{})
	assert.Equal(t, "Pilatus loop", published["title"])
	assert.Equal(t, "Pilatus Runde.gpx", published["gpx_file"])
}

// TestWorkerRunSkipsSeenLinks tests the seen-link guard across runs
func TestWorkerRunSkipsSeenLinks(t *testing.T) {
	mockPublisher := NewMockPublisher()
	mockCache := NewMockCache()
	loader := &MockLoader{batch: testBatch()}

	w := newTestWorker(loader, mockPublisher, mockCache)
	require.NoError(t, w.Run())
	require.NoError(t, w.Run())

	assert.Len(t, mockPublisher.messages["komoot"], 1, "a re-run must not republish")
	assert.Len(t, mockPublisher.messages["schweizmobil"], 1)
}

// TestWorkerRunWithoutCache tests that the guard is optional
func TestWorkerRunWithoutCache(t *testing.T) {
	mockPublisher := NewMockPublisher()
	w := newTestWorker(&MockLoader{batch: testBatch()}, mockPublisher, nil)

	require.NoError(t, w.Run())
	require.NoError(t, w.Run())

	assert.Len(t, mockPublisher.messages["komoot"], 2, "without a cache every run publishes")
}

// TestWorkerRunAbortsOnPublishError tests the at-least-once abort contract
func TestWorkerRunAbortsOnPublishError(t *testing.T) {
	mockPublisher := NewMockPublisher()
	mockPublisher.failOn = "komoot"
	mockCache := NewMockCache()

	w := newTestWorker(&MockLoader{batch: testBatch()}, mockPublisher, mockCache)

	err := w.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish failed")
	assert.Empty(t, mockCache.items, "a failed route must not be marked as seen")
}

// TestWorkerRunPropagatesLoaderError tests loader failure handling
func TestWorkerRunPropagatesLoaderError(t *testing.T) {
	w := newTestWorker(&MockLoader{err: errors.New("disk gone")}, NewMockPublisher(), nil)
	assert.Error(t, w.Run())
}

// TestWorkerRunPropagatesPipelineError tests the fail-fast contract
func TestWorkerRunPropagatesPipelineError(t *testing.T) {
	batch := testBatch()
	batch.Komoot[0]["difficulty"] = "Hardcore"

	mockPublisher := NewMockPublisher()
	w := newTestWorker(&MockLoader{batch: batch}, mockPublisher, nil)

	assert.Error(t, w.Run())
	assert.Empty(t, mockPublisher.messages, "nothing goes out of a failed batch")
}
