package alternatives

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/clearuse/clearuse/internal/model"
)

func TestCatalog(t *testing.T) {
	images := Catalog(model.ContentImage)
	if len(images) != 6 {
		t.Fatalf("image catalog has %d entries, want 6", len(images))
	}
	for _, s := range images {
		if s.Kind != model.AlternativeGeneral {
			t.Fatalf("catalog entry %q has kind %v", s.Source, s.Kind)
		}
		if s.Description == "" {
			t.Fatalf("image entry %q missing search hint", s.Source)
		}
	}

	docs := Catalog(model.ContentDocument)
	if len(docs) != 6 {
		t.Fatalf("document catalog has %d entries, want 6", len(docs))
	}

	if Catalog("") != nil {
		t.Fatal("unknown content type should yield no catalog")
	}
}

func TestEducational(t *testing.T) {
	for _, kind := range []model.ContentType{model.ContentImage, model.ContentDocument} {
		entries := Educational(kind)
		if len(entries) != 3 {
			t.Fatalf("educational(%v) has %d entries, want 3", kind, len(entries))
		}
		for _, s := range entries {
			if s.Kind != model.AlternativeEducational {
				t.Fatalf("entry %q has kind %v", s.Source, s.Kind)
			}
		}
	}
}

func TestAllSources(t *testing.T) {
	all := AllSources()
	if len(all["images"]) != 9 || len(all["documents"]) != 9 {
		t.Fatalf("images=%d documents=%d, want 9/9", len(all["images"]), len(all["documents"]))
	}
}

func TestSearchTerms(t *testing.T) {
	src := model.SourceInfo{Title: "Golden Gate Bridge", Author: "A. Adams", Subject: "architecture"}
	got := searchTerms(src)
	if got != "Golden Gate Bridge A. Adams architecture" {
		t.Fatalf("searchTerms = %q", got)
	}

	long := model.SourceInfo{Title: strings.Repeat("x", 300)}
	if len(searchTerms(long)) > searchTermsLimit {
		t.Fatal("search terms not truncated")
	}

	if searchTerms(model.SourceInfo{}) != "" {
		t.Fatal("empty source should yield empty query")
	}
}

const commonsFixture = `{
  "query": {
    "pages": {
      "1": {
        "title": "File:Bridge at dusk.jpg",
        "imageinfo": [{
          "url": "https://upload.wikimedia.org/bridge.jpg",
          "descriptionurl": "https://commons.wikimedia.org/wiki/File:Bridge_at_dusk.jpg",
          "extmetadata": {"LicenseShortName": {"value": "CC BY-SA 4.0"}}
        }]
      },
      "2": {
        "title": "File:No info.jpg",
        "imageinfo": []
      }
    }
  }
}`

func newTestClient(endpoint string) *WikimediaClient {
	return NewWikimediaClient(WikimediaOptions{
		Timeout:    2 * time.Second,
		UserAgent:  "clearuse-test",
		MaxResults: 3,
		RPS:        100,
		Burst:      10,
		Endpoint:   endpoint,
	})
}

func TestWikimediaSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("gsrsearch"); got != "bridge" {
			t.Errorf("gsrsearch = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(commonsFixture))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL + "/w/api.php")
	results, err := client.Search(context.Background(), "bridge")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1 (page without imageinfo skipped)", len(results))
	}
	r := results[0]
	if r.Title != "Bridge at dusk.jpg" {
		t.Fatalf("title = %q", r.Title)
	}
	if r.License != "CC BY-SA 4.0" {
		t.Fatalf("license = %q", r.License)
	}
	if r.Kind != model.AlternativeSpecific {
		t.Fatalf("kind = %v", r.Kind)
	}
	if r.FileURL == "" || r.URL == "" {
		t.Fatalf("urls not populated: %+v", r)
	}
}

func TestWikimediaSearch_EmptyQuery(t *testing.T) {
	client := newTestClient("http://127.0.0.1:0/w/api.php")
	results, err := client.Search(context.Background(), "   ")
	if err != nil || results != nil {
		t.Fatalf("empty query should be a no-op, got (%v, %v)", results, err)
	}
}

func TestWikimediaSearch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL + "/w/api.php")
	if _, err := client.Search(context.Background(), "bridge"); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestFind_DegradesToCatalogOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	srv.Close() // immediately closed: connection refused

	finder := NewFinder(newTestClient(srv.URL+"/w/api.php"), nil)
	result := finder.Find(context.Background(), model.SourceInfo{
		ContentType: model.ContentImage,
		Title:       "bridge",
	})

	if !result.Searched || !result.Failed {
		t.Fatalf("searched=%v failed=%v, want true/true", result.Searched, result.Failed)
	}
	if result.Reason == "" {
		t.Fatal("failure reason missing")
	}
	// Static catalog plus educational sources survive the failure.
	if len(result.Items) != 9 {
		t.Fatalf("items = %d, want 9", len(result.Items))
	}
}

func TestFind_DocumentSkipsSearch(t *testing.T) {
	finder := NewFinder(newTestClient("http://127.0.0.1:0/"), nil)
	result := finder.Find(context.Background(), model.SourceInfo{ContentType: model.ContentDocument, Title: "thermodynamics"})
	if result.Searched {
		t.Fatal("document lookup must not hit the image search")
	}
	if len(result.Items) != 9 {
		t.Fatalf("items = %d, want 9", len(result.Items))
	}
}

func TestVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusForbidden)
		}
	}))
	defer srv.Close()

	items := []model.AlternativeSource{
		{Source: "a", URL: srv.URL + "/ok"},
		{Source: "b", URL: srv.URL + "/gone"},
		{Source: "c", URL: srv.URL + "/blocked"},
		{Source: "d"}, // no URL
	}

	v := NewVerifier(2*time.Second, 4, "clearuse-test", "", "", "")
	v.Verify(context.Background(), items)

	if items[0].Verified == nil || !*items[0].Verified {
		t.Fatalf("reachable link: %v", items[0].Verified)
	}
	if items[1].Verified == nil || *items[1].Verified {
		t.Fatalf("dead link: %v", items[1].Verified)
	}
	if items[2].Verified != nil {
		t.Fatalf("inconclusive status must stay unverified: %v", *items[2].Verified)
	}
	if items[3].Verified != nil {
		t.Fatal("item without URL must not be checked")
	}
}

func TestVerify_RetriesServerErrors(t *testing.T) {
	origSleep := verifySleepFunc
	verifySleepFunc = func(time.Duration) {}
	defer func() { verifySleepFunc = origSleep }()

	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	items := []model.AlternativeSource{{Source: "a", URL: srv.URL}}
	v := NewVerifier(2*time.Second, 1, "clearuse-test", "", "", "")
	v.Verify(context.Background(), items)

	if attempts != verifyMaxRetries {
		t.Fatalf("attempts = %d, want %d", attempts, verifyMaxRetries)
	}
	if items[0].Verified != nil {
		t.Fatal("exhausted retries must leave the link unverified")
	}
}
