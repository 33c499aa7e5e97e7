package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbenefits/ratesync/internal/content"
	"github.com/openbenefits/ratesync/pkg/errors"
)

const testStoreJSON = `{
  "tax_year": "2025-26",
  "last_updated": "2025-04-07",
  "source": "GOV.UK",
  "rates": {
    "carers_allowance": {
      "weekly": 81.90
    },
    "state_pension_full_new_weekly": 221.20
  }
}
`

var testBenefitPaths = []string{
	"attendance-allowance",
	"pension-credit",
	"carers-allowance",
	"child-benefit",
	"pip",
	"universal-credit",
	"maternity-allowance",
	"marriage-allowance",
	"bereavement-support-payment",
	"new-state-pension",
}

// newUpdateApp builds an App against a canned content server and a
// temp store, with logging discarded.
func newUpdateApp(t *testing.T, pages map[string]content.Document) (*App, string) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc, ok := pages[strings.TrimPrefix(r.URL.Path, "/")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(doc)
	}))
	t.Cleanup(server.Close)

	storePath := filepath.Join(t.TempDir(), "benefit-rates.json")
	require.NoError(t, os.WriteFile(storePath, []byte(testStoreJSON), 0o644))

	config := &Config{
		StorePath:     storePath,
		ContentAPIURL: server.URL,
		FetchTimeout:  5 * time.Second,
		LogFormat:     "json",
		LogOutput:     "discard",
	}
	logger := NewLogger(config)
	application, err := New("test", "none", "none", WithConfig(config), WithLogger(&logger))
	require.NoError(t, err)

	return application, storePath
}

func ratesGuide(body string) content.Document {
	var doc content.Document
	doc.Details.Parts = []content.Part{{Slug: "what-youll-get", Title: "What you'll get", Body: body}}
	return doc
}

func blankPages() map[string]content.Document {
	blank := ratesGuide("<p>Rates for the new tax year have not been published.</p>")
	pages := make(map[string]content.Document, len(testBenefitPaths))
	for _, path := range testBenefitPaths {
		pages[path] = blank
	}
	return pages
}

// A rejected update must list every validation finding, not just the
// failure count.
func TestUpdateCommandPrintsValidationFindings(t *testing.T) {
	pages := blankPages()
	// 81.90 -> 200 is a 144% move, past the hard drift limit.
	pages["carers-allowance"] = ratesGuide(`<p>You could get £200 a week.</p>`)

	application, storePath := newUpdateApp(t, pages)

	var out bytes.Buffer
	cmd := application.NewUpdateCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.IsValidationFailed(err))

	assert.Contains(t, out.String(), "carers_allowance.weekly")
	assert.Contains(t, out.String(), "exceeds 50%")

	stored, err := os.ReadFile(storePath)
	require.NoError(t, err)
	assert.Equal(t, testStoreJSON, string(stored), "a rejected run must not rewrite the store")
}

func TestUpdateCommandReportsChanges(t *testing.T) {
	pages := blankPages()
	pages["carers-allowance"] = ratesGuide(`<p>You could get £83.30 a week.</p>`)

	application, _ := newUpdateApp(t, pages)

	var out bytes.Buffer
	cmd := application.NewUpdateCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1 changed")
	assert.Contains(t, out.String(), "carers_allowance.weekly 81.9 -> 83.3")
	assert.Contains(t, out.String(), "Store updated")
}
