package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/analysis"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/model"
)

func TestCompare_MissingTopic(t *testing.T) {
	comparer := &fakeComparer{}
	r := newTestRouter(&fakeStore{}, &fakeAnalyzer{}, comparer)

	w := doRequest(r, "POST", "/api/compare", `{"sources": ["CNN"]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Topic must be provided", errorMessage(w))
	assert.Equal(t, "", comparer.topic)
}

func TestCompare_ReturnsResults(t *testing.T) {
	comparer := &fakeComparer{results: []model.ComparisonResult{
		{Source: "CNN", BiasScore: 62, BiasLabel: model.LabelLeaningLiberal, Explanation: "[Illustrative] x", Illustrative: true},
	}}
	r := newTestRouter(&fakeStore{}, &fakeAnalyzer{}, comparer)

	w := doRequest(r, "POST", "/api/compare", `{"topic": "budget talks"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "budget talks", comparer.topic)
	assert.Equal(t, 0, len(comparer.sources))

	var res []model.ComparisonResult
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, true, res[0].Illustrative)
}

func TestCompare_PassesSources(t *testing.T) {
	comparer := &fakeComparer{}
	r := newTestRouter(&fakeStore{}, &fakeAnalyzer{}, comparer)

	w := doRequest(r, "POST", "/api/compare", `{"topic": "tariffs", "sources": ["CNN", "NPR"]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"CNN", "NPR"}, comparer.sources)
	assert.Equal(t, "[]", w.Body.String())
}

func TestCompare_UpstreamError(t *testing.T) {
	comparer := &fakeComparer{err: &analysis.UpstreamError{Op: "compare sources", Err: errors.New("timeout")}}
	r := newTestRouter(&fakeStore{}, &fakeAnalyzer{}, comparer)

	w := doRequest(r, "POST", "/api/compare", `{"topic": "tariffs"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "failed to compare sources: timeout", errorMessage(w))
}
