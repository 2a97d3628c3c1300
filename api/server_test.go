package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matt-g-everett/boxtx/annotate"
	"github.com/matt-g-everett/boxtx/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApi(t *testing.T) *Api {
	t.Helper()
	tl, err := annotate.NewInterpolator(1).Expand([]annotate.Keyframe{
		{Frame: 0, Boxes: []annotate.Box{annotate.NewBox(10, 10, 20, 20)}},
		{Frame: 4, Boxes: []annotate.Box{annotate.NewBox(50, 10, 60, 20)}},
	})
	require.NoError(t, err)

	a := NewApi()
	a.SetTimeline(tl)
	return a
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestTimelineEndpoint(t *testing.T) {
	rec := get(t, newTestApi(t).Handler(), "/timeline")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var tl annotate.Timeline
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tl))
	assert.Equal(t, 5, tl.Len())
	assert.Equal(t, 30, tl.Frames[2][0].Min.X)
}

func TestSummaryEndpoint(t *testing.T) {
	rec := get(t, newTestApi(t).Handler(), "/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary []export.ElementSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Len(t, summary, 1)
	assert.Equal(t, 5, summary[0].Frames)
}

func TestCSVEndpoint(t *testing.T) {
	rec := get(t, newTestApi(t).Handler(), "/annotations.csv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "frame,element_0\n"))
}

func TestChartEndpoint(t *testing.T) {
	rec := get(t, newTestApi(t).Handler(), "/chart")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "element 0 x")
}

func TestNoTimeline(t *testing.T) {
	h := NewApi().Handler()
	for _, path := range []string{"/timeline", "/summary", "/annotations.csv", "/chart"} {
		assert.Equal(t, http.StatusServiceUnavailable, get(t, h, path).Code, path)
	}
}
