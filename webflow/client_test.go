package webflow

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fluxlocale/weft"
	"github.com/fluxlocale/weft/cache"
)

const localesBody = `{"locales":{
	"primary":{"id":"loc-en","cmsLocaleId":"cms-en","tag":"en-US","displayName":"English","enabled":true},
	"secondary":[
		{"id":"loc-fr","cmsLocaleId":"cms-fr","tag":"fr-FR","displayName":"French","enabled":true},
		{"id":"loc-de","cmsLocaleId":"cms-de","tag":"de-DE","displayName":"German","enabled":false}
	]
}}`

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return New("test-token", append([]Option{WithBaseURL(srv.URL)}, opts...)...)
}

func TestSiteLocales(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sites/site-1" {
			t.Errorf("path = %s, want /sites/site-1", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("Authorization = %q, want bearer token", auth)
		}
		io.WriteString(w, localesBody)
	})

	locales, err := client.SiteLocales(context.Background(), "site-1")
	if err != nil {
		t.Fatalf("SiteLocales() error = %v", err)
	}

	if locales.Primary.ID != "loc-en" || len(locales.Secondary) != 2 {
		t.Fatalf("SiteLocales() = %+v", locales)
	}
	if all := locales.All(); len(all) != 3 || all[0].Tag != "en-US" {
		t.Errorf("All() = %+v", all)
	}
}

// Targets never includes the primary locale: the primary is the translation
// source and must not be written.
func TestLocalesTargets(t *testing.T) {
	var locales Locales
	if err := json.Unmarshal([]byte(localesBody), &struct {
		Locales *Locales `json:"locales"`
	}{&locales}); err != nil {
		t.Fatal(err)
	}

	targets := locales.Targets()
	if len(targets) != 2 {
		t.Fatalf("Targets() = %+v, want both secondaries", targets)
	}
	for _, target := range targets {
		if target.Tag == "en-US" {
			t.Error("Targets() includes the primary locale")
		}
	}
	if targets[0].LocaleID != "loc-fr" || targets[0].CMSLocaleID != "cms-fr" {
		t.Errorf("target identifiers = %+v", targets[0])
	}

	// CMS targets drop disabled locales.
	cmsTargets := locales.CMSTargets()
	if len(cmsTargets) != 1 || cmsTargets[0].Tag != "fr-FR" {
		t.Errorf("CMSTargets() = %+v, want only the enabled secondary", cmsTargets)
	}
}

func TestPageDOM(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pages/page-1/dom" {
			t.Errorf("path = %s", r.URL.Path)
		}
		io.WriteString(w, `{"nodes":[
			{"id":"n1","type":"text","text":{"text":"Hi","html":"<p>Hi</p>"}},
			{"id":"c1","propertyOverrides":[{"propertyId":"p1","text":{"text":"CTA"}}]}
		]}`)
	})

	tree, err := client.PageDOM(context.Background(), "page-1")
	if err != nil {
		t.Fatalf("PageDOM() error = %v", err)
	}
	if len(tree.Nodes) != 2 {
		t.Fatalf("node count = %d, want 2", len(tree.Nodes))
	}
	if tree.Nodes[1].PropertyOverrides[0].Text.Text != "CTA" {
		t.Errorf("override text = %+v", tree.Nodes[1].PropertyOverrides[0])
	}
}

func TestUpdatePageDOM(t *testing.T) {
	var gotBody []byte
	var gotLocale string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		gotLocale = r.URL.Query().Get("localeId")
		gotBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{}`)
	})

	payload := weft.WriteRequest{Nodes: []weft.WriteNode{
		{NodeID: "n1", Text: "Bonjour"},
		{NodeID: "c1", PropertyOverrides: []weft.WriteOverride{{PropertyID: "p1", Text: "Allez"}}},
	}}
	if err := client.UpdatePageDOM(context.Background(), "page-1", "loc-fr", payload); err != nil {
		t.Fatalf("UpdatePageDOM() error = %v", err)
	}

	if gotLocale != "loc-fr" {
		t.Errorf("localeId = %q, want loc-fr", gotLocale)
	}

	var sent weft.WriteRequest
	if err := json.Unmarshal(gotBody, &sent); err != nil {
		t.Fatalf("request body does not parse: %v\n%s", err, gotBody)
	}
	if sent.Nodes[0].Text != "Bonjour" || sent.Nodes[1].PropertyOverrides[0].Text != "Allez" {
		t.Errorf("sent payload = %+v", sent)
	}
}

// The upstream error body is preserved verbatim so a failed write can be
// diagnosed and replayed by hand.
func TestRemoteRejectedKeepsBody(t *testing.T) {
	const body = `{"message":"validation failure","code":"invalid_dom"}`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, body)
	})

	err := client.UpdatePageDOM(context.Background(), "page-1", "loc-fr", weft.WriteRequest{})
	var rejected *weft.RemoteRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("error = %v, want RemoteRejectedError", err)
	}
	if rejected.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", rejected.Status)
	}
	if rejected.Body != body {
		t.Errorf("Body = %q, want upstream body verbatim", rejected.Body)
	}
}

func TestUpdateItem(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s, want PATCH", r.Method)
		}
		if r.URL.Path != "/collections/coll-1/items/item-1" {
			t.Errorf("path = %s", r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(data, &gotBody); err != nil {
			t.Errorf("body does not parse: %v", err)
		}
		io.WriteString(w, `{}`)
	})

	fields := map[string]any{"name": "Titre", "slug": "my-post"}
	if err := client.UpdateItem(context.Background(), "coll-1", "item-1", "cms-fr", fields, true, false); err != nil {
		t.Fatalf("UpdateItem() error = %v", err)
	}

	if gotBody["cmsLocaleId"] != "cms-fr" {
		t.Errorf("cmsLocaleId = %v, want cms-fr", gotBody["cmsLocaleId"])
	}
	if gotBody["isDraft"] != true || gotBody["isArchived"] != false {
		t.Errorf("flags = draft %v archived %v", gotBody["isDraft"], gotBody["isArchived"])
	}
	fieldData, _ := gotBody["fieldData"].(map[string]any)
	if fieldData["name"] != "Titre" || fieldData["slug"] != "my-post" {
		t.Errorf("fieldData = %v", fieldData)
	}
}

func TestItemLocaleQuery(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("cmsLocaleId")
		io.WriteString(w, `{"id":"item-1","fieldData":{"name":"Titre"}}`)
	})

	item, err := client.Item(context.Background(), "coll-1", "item-1", "cms-fr")
	if err != nil {
		t.Fatalf("Item() error = %v", err)
	}
	if gotQuery != "cms-fr" {
		t.Errorf("cmsLocaleId query = %q, want cms-fr", gotQuery)
	}
	if item.FieldData["name"] != "Titre" {
		t.Errorf("item = %+v", item)
	}
}

// Metadata listings go through the cache; the second lookup never reaches
// the server.
func TestSiteLocalesCached(t *testing.T) {
	hits := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		io.WriteString(w, localesBody)
	}, WithCache(cache.NewInMemoryCache(60)))

	for i := 0; i < 2; i++ {
		locales, err := client.SiteLocales(context.Background(), "site-1")
		if err != nil {
			t.Fatalf("SiteLocales() %d error = %v", i, err)
		}
		if locales.Primary.ID != "loc-en" {
			t.Fatalf("SiteLocales() %d = %+v", i, locales)
		}
	}

	if hits != 1 {
		t.Errorf("server hits = %d, want 1", hits)
	}
}

func TestValidateTokenUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"unauthorized"}`)
	})

	err := client.ValidateToken(context.Background())
	if err == nil {
		t.Fatal("ValidateToken() error = nil, want failure")
	}
	var rejected *weft.RemoteRejectedError
	if !errors.As(err, &rejected) || rejected.Status != http.StatusUnauthorized {
		t.Errorf("error = %v, want wrapped 401", err)
	}
}

func TestPageWriterUsesDOMLocale(t *testing.T) {
	var gotLocale string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotLocale = r.URL.Query().Get("localeId")
		io.WriteString(w, `{}`)
	})

	write := client.PageWriter("page-1")
	target := weft.LocaleTarget{LocaleID: "loc-fr", CMSLocaleID: "cms-fr", Tag: "fr-FR"}
	if err := write(context.Background(), target, weft.WriteRequest{}); err != nil {
		t.Fatalf("write error = %v", err)
	}
	if gotLocale != "loc-fr" {
		t.Errorf("localeId = %q, want the DOM locale identifier", gotLocale)
	}
}
