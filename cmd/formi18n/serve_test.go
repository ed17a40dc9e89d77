package main

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-formi18n/pkg/export"
	"github.com/goliatone/go-formi18n/pkg/orchestrator"
)

func newTestServer(t *testing.T, logs io.Writer) *httptest.Server {
	t.Helper()
	if logs == nil {
		logs = io.Discard
	}
	logger := slog.New(slog.NewTextHandler(logs, nil))
	srv := newServer(contactSession(t), orchestrator.New(orchestrator.WithLogger(logger)), logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string, header http.Header) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	for key, values := range header {
		req.Header[key] = values
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func TestServer_Preview(t *testing.T) {
	var logs bytes.Buffer
	ts := newTestServer(t, &logs)

	resp, body := get(t, ts.URL+"/preview?lang=es", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
	if got := resp.Header.Get("Content-Language"); got != "es" {
		t.Fatalf("content-language: %q", got)
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		t.Fatalf("content-type: %q", resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(body, "Formulario de Contacto") {
		t.Fatalf("expected spanish title in body")
	}
	if !strings.Contains(logs.String(), "status=200") {
		t.Fatalf("expected request log, got %q", logs.String())
	}

	resp, _ = get(t, ts.URL+"/preview", http.Header{"Accept-Language": {"fr-CA, es;q=0.8"}})
	if got := resp.Header.Get("Content-Language"); got != "es" {
		t.Fatalf("accept-language should negotiate es, got %q", got)
	}

	resp, body = get(t, ts.URL+"/preview?renderer=json&lang=en", nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `"title": "Contact Form"`) {
		t.Fatalf("json preview: %d %s", resp.StatusCode, body)
	}

	resp, _ = get(t, ts.URL+"/preview?renderer=tui", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("tui should be rejected, got %d", resp.StatusCode)
	}
	resp, _ = get(t, ts.URL+"/preview?renderer=pdf", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown renderer should be rejected, got %d", resp.StatusCode)
	}
}

func TestServer_ExportAndImport(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, body := get(t, ts.URL+"/export.yaml", nil)
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "application/yaml" {
		t.Fatalf("export.yaml: %d %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(body, "formTitle: Formulario de Contacto") {
		t.Fatalf("unexpected yaml export:\n%s", body)
	}

	doc := export.ContactForm()
	doc.FormFields = doc.FormFields[:1]
	data, err := export.EncodeJSON(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if status := put(t, ts.URL+"/document", data); status != http.StatusNoContent {
		t.Fatalf("import status %d", status)
	}
	if status := put(t, ts.URL+"/document", []byte(`{"formFields": [], "translations": {"fr": {}}}`)); status != http.StatusUnprocessableEntity {
		t.Fatalf("document without base language should be rejected, got %d", status)
	}

	_, body = get(t, ts.URL+"/export.json", nil)
	exported, err := export.Decode([]byte(body), "en")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(exported.FormFields) != 1 {
		t.Fatalf("import should replace the served document, got %d fields", len(exported.FormFields))
	}
}

func put(t *testing.T, url string, body []byte) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestServer_OpenAPIAndAssets(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, body := get(t, ts.URL+"/openapi.json", http.Header{"Accept-Language": {"es"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("openapi status %d: %s", resp.StatusCode, body)
	}
	if resp.Header.Get("Content-Language") != "es" || !strings.Contains(body, `"x-formi18n-language": "es"`) {
		t.Fatalf("expected spanish contract:\n%s", body)
	}

	resp, _ = get(t, ts.URL+"/openapi.json?lang=de", nil)
	if resp.Header.Get("Content-Language") != "en" {
		t.Fatalf("unknown language should fall back to base, got %q", resp.Header.Get("Content-Language"))
	}

	resp, body = get(t, ts.URL+"/assets/formi18n.css", nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(resp.Header.Get("Content-Type"), "text/css") {
		t.Fatalf("stylesheet: %d %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	if body == "" {
		t.Fatalf("stylesheet is empty")
	}

	resp, _ = get(t, ts.URL+"/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz: %d", resp.StatusCode)
	}
}

func TestServer_ImportRejectsOversizedDocument(t *testing.T) {
	handler := newServer(contactSession(t), orchestrator.New(), nil).Handler()

	body := append([]byte(`{"formFields": [`), bytes.Repeat([]byte(" "), maxDocumentBytes)...)
	body = append(body, `], "translations": {"en": {}}}`...)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/document", bytes.NewReader(body)))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized document should be rejected with 413, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "exceeds") {
		t.Fatalf("unexpected error body %q", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export.json", nil))
	exported, err := export.Decode(rec.Body.Bytes(), "en")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(exported.FormFields) != 3 {
		t.Fatalf("rejected import must keep the served document, got %d fields", len(exported.FormFields))
	}
}
