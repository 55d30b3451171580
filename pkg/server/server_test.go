package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/oleksiit/giftrank/internal/store"
	"github.com/oleksiit/giftrank/pkg/catalog"
	"github.com/oleksiit/giftrank/pkg/engine"
)

type fakeStore struct {
	items []catalog.Item
	err   error
}

func (f *fakeStore) UpsertItem(ctx context.Context, item *catalog.Item) error { return f.err }
func (f *fakeStore) UpsertItems(ctx context.Context, items []catalog.Item) error {
	return f.err
}
func (f *fakeStore) GetItem(ctx context.Context, id int64) (*catalog.Item, error) {
	return nil, f.err
}
func (f *fakeStore) ListItems(ctx context.Context, opts store.ListOpts) ([]catalog.Item, error) {
	return f.items, f.err
}
func (f *fakeStore) CountItemsByCategory(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, it := range f.items {
		counts[it.Category]++
	}
	return counts, f.err
}
func (f *fakeStore) Close() error { return nil }

func newTestServer(t *testing.T, items []catalog.Item) *Server {
	t.Helper()
	eng := engine.New(engine.Weights{}, engine.Thresholds{}, language.Und, nil)
	srv := New(&fakeStore{items: items}, eng, nil, 0)
	require.NoError(t, srv.Reload(context.Background()))
	return srv
}

func testItems() []catalog.Item {
	return []catalog.Item{
		{ID: 1, Title: "Ceramic mug", Category: "mugs", PriceMin: 120, Stars: 4.5, Reviews: 40},
		{ID: 2, Title: "Cookbook", Category: "books", PriceMin: 280, Stars: 4.8, Reviews: 90},
		{ID: 3, Title: "Wool scarf", Category: "clothing", PriceMin: 450, Stars: 4.2, Reviews: 8},
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleGifts(t *testing.T) {
	srv := newTestServer(t, testItems())

	rec := httptest.NewRecorder()
	srv.handleGifts(rec, httptest.NewRequest(http.MethodGet, "/api/v1/gifts?sort=price&dir=desc", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.EqualValues(t, 3, body["count"])
	require.Equal(t, "reviews", body["formula"])

	rows := body["data"].([]any)
	first := rows[0].(map[string]any)
	require.Equal(t, "Wool scarf", first["title"])
	require.NotNil(t, first["score"])
	require.NotNil(t, first["priority_label"])
}

func TestHandleGiftsFilters(t *testing.T) {
	srv := newTestServer(t, testItems())

	rec := httptest.NewRecorder()
	srv.handleGifts(rec, httptest.NewRequest(http.MethodGet, "/api/v1/gifts?category=mugs", nil))
	require.EqualValues(t, 1, decodeBody(t, rec)["count"])

	// Malformed numeric filter behaves as no filter at all.
	rec = httptest.NewRecorder()
	srv.handleGifts(rec, httptest.NewRequest(http.MethodGet, "/api/v1/gifts?max_price=abc", nil))
	require.EqualValues(t, 3, decodeBody(t, rec)["count"])
}

func TestHandleGiftsQuickToggle(t *testing.T) {
	srv := newTestServer(t, testItems())

	// quick=value overrides the explicit column sort.
	rec := httptest.NewRecorder()
	srv.handleGifts(rec, httptest.NewRequest(http.MethodGet, "/api/v1/gifts?quick=value&sort=price&dir=asc", nil))

	rows := decodeBody(t, rec)["data"].([]any)
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = r.(map[string]any)["value"].(float64)
	}
	for i := 1; i < len(values); i++ {
		require.GreaterOrEqual(t, values[i-1], values[i])
	}
}

func TestHandleGiftsMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, testItems())

	rec := httptest.NewRecorder()
	srv.handleGifts(rec, httptest.NewRequest(http.MethodPost, "/api/v1/gifts", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleCategories(t *testing.T) {
	srv := newTestServer(t, testItems())

	rec := httptest.NewRecorder()
	srv.handleCategories(rec, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 3, decodeBody(t, rec)["count"])
}

func TestHandleStats(t *testing.T) {
	srv := newTestServer(t, testItems())

	rec := httptest.NewRecorder()
	srv.handleStats(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))

	body := decodeBody(t, rec)
	agg := body["aggregates"].(map[string]any)
	require.EqualValues(t, 3, agg["count"])
	require.EqualValues(t, 90, agg["max_reviews"])
}

func TestReloadSwapsSnapshot(t *testing.T) {
	fs := &fakeStore{items: testItems()}
	eng := engine.New(engine.Weights{}, engine.Thresholds{}, language.Und, nil)
	srv := New(fs, eng, nil, 0)
	require.NoError(t, srv.Reload(context.Background()))
	require.Equal(t, 3, srv.snapshot().Agg.Count)

	fs.items = fs.items[:1]
	rec := httptest.NewRecorder()
	srv.handleReload(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, srv.snapshot().Agg.Count)
}

func TestReloadFailureKeepsOldSnapshot(t *testing.T) {
	fs := &fakeStore{items: testItems()}
	eng := engine.New(engine.Weights{}, engine.Thresholds{}, language.Und, nil)
	srv := New(fs, eng, nil, 0)
	require.NoError(t, srv.Reload(context.Background()))

	fs.err = errors.New("disk gone")
	require.Error(t, srv.Reload(context.Background()))
	require.Equal(t, 3, srv.snapshot().Agg.Count)
}

func TestSnapshotBeforeReloadIsEmptyCorpus(t *testing.T) {
	eng := engine.New(engine.Weights{}, engine.Thresholds{}, language.Und, nil)
	srv := New(&fakeStore{}, eng, nil, 0)

	rec := httptest.NewRecorder()
	srv.handleGifts(rec, httptest.NewRequest(http.MethodGet, "/api/v1/gifts", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 0, decodeBody(t, rec)["count"])
}
