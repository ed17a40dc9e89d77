package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/goliatone/go-formi18n/pkg/export"
	"github.com/goliatone/go-formi18n/pkg/openapi"
	"github.com/goliatone/go-formi18n/pkg/orchestrator"
	"github.com/goliatone/go-formi18n/pkg/render"
	"github.com/goliatone/go-formi18n/pkg/renderers/html"
	"github.com/goliatone/go-formi18n/pkg/renderers/tui"
	"github.com/goliatone/go-formi18n/pkg/session"
	"github.com/goliatone/go-formi18n/pkg/translation"
)

const maxDocumentBytes = 1 << 20

func runServe(ctx context.Context, a *app, args []string) error {
	fs, df := a.newFlagSet("serve")
	addr := fs.String("addr", a.cfg.Addr, "listen address")
	themeFile := fs.String("theme-manifest", a.cfg.ThemeFile, "theme manifest (JSON or YAML)")
	hf := a.htmlFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	sess, err := a.loadSession(df)
	if err != nil {
		return err
	}
	options, err := a.sessionOptions(df)
	if err != nil {
		return err
	}
	orch, err := a.newOrchestrator(*themeFile, hf.options())
	if err != nil {
		return err
	}

	srv := newServer(sess, orch, a.logger, options...)
	srv.themeName, srv.themeVariant = a.cfg.ThemeName, a.cfg.ThemeVariant
	if *themeFile == "" {
		srv.renderOptions = a.tokenTheme()
	}

	httpSrv := &http.Server{
		Addr:              *addr,
		Handler:           srv.Handler(),
		ReadTimeout:       a.cfg.ReadTimeout,
		ReadHeaderTimeout: a.cfg.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", "addr", httpSrv.Addr, "document", df.path)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// server exposes one session over HTTP. The session is not safe for
// concurrent use, so every handler holds mu while touching it.
type server struct {
	mu             sync.Mutex
	sess           *session.Session
	sessionOptions []session.Option

	orch          *orchestrator.Orchestrator
	logger        *slog.Logger
	themeName     string
	themeVariant  string
	renderOptions render.RenderOptions
}

func newServer(sess *session.Session, orch *orchestrator.Orchestrator, logger *slog.Logger, options ...session.Option) *server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &server{sess: sess, orch: orch, logger: logger, sessionOptions: options}
}

// Handler returns the routed, request-logging handler.
func (s *server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /preview", s.handlePreview)
	mux.HandleFunc("GET /export.json", s.handleExport(export.FormatJSON))
	mux.HandleFunc("GET /export.yaml", s.handleExport(export.FormatYAML))
	mux.HandleFunc("PUT /document", s.handleImport)
	mux.HandleFunc("GET /openapi.json", s.handleOpenAPI)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(html.AssetsFS())))
	return logRequests(s.logger, mux)
}

func (s *server) handlePreview(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	rendererName := query.Get("renderer")
	if rendererName == tui.Name {
		http.Error(w, "the tui renderer is interactive and cannot be served", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	result, err := s.orch.Render(r.Context(), orchestrator.Request{
		Session:        s.sess,
		Language:       query.Get(render.LanguageInputName),
		AcceptLanguage: r.Header.Get("Accept-Language"),
		Renderer:       rendererName,
		ThemeName:      firstNonBlank(query.Get("theme"), s.themeName),
		ThemeVariant:   firstNonBlank(query.Get("variant"), s.themeVariant),
		RenderOptions:  s.renderOptions,
	})
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("preview failed", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Language", result.Language)
	w.Header().Add("Vary", "Accept-Language")
	_, _ = w.Write(result.Body)
}

func (s *server) handleExport(format export.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		doc := s.sess.Serialize()
		s.mu.Unlock()

		data, err := export.Encode(doc, format)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		_, _ = w.Write(data)
	}
}

// handleImport replaces the served session with the uploaded document.
func (s *server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("document exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := export.Decode(data, s.sess.BaseLanguage())
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	next, err := session.FromDocument(doc, s.sessionOptions...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.sess = next
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc := s.sess.Serialize()
	language := translation.NormalizeCode(r.URL.Query().Get(render.LanguageInputName))
	if _, ok := doc.Translations[language]; !ok {
		language = ""
	}
	if language == "" {
		if match, ok := translation.MatchAcceptLanguage(s.sess.Languages(), r.Header.Get("Accept-Language")); ok {
			language = match
		} else {
			language = s.sess.BaseLanguage()
		}
	}
	s.mu.Unlock()

	spec, err := openapi.Build(r.Context(), doc, language)
	if err != nil {
		http.Error(w, fmt.Sprintf("build contract: %v", err), http.StatusInternalServerError)
		return
	}
	data, err := openapi.Marshal(spec)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Language", language)
	_, _ = w.Write(data)
}

type httpStatusWriter struct {
	Status int
	inner  http.ResponseWriter
}

func (sw *httpStatusWriter) Header() http.Header {
	return sw.inner.Header()
}

func (sw *httpStatusWriter) WriteHeader(status int) {
	sw.Status = status
	sw.inner.WriteHeader(status)
}

func (sw *httpStatusWriter) Write(b []byte) (int, error) {
	if sw.Status == 0 {
		sw.Status = http.StatusOK
	}
	return sw.inner.Write(b)
}

func logRequests(l *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		statusWriter := &httpStatusWriter{inner: w}
		t := time.Now()

		next.ServeHTTP(statusWriter, r)
		l.Info("request received",
			"method", r.Method,
			"url", r.URL.String(),
			"ip", r.RemoteAddr,
			"status", statusWriter.Status,
			"duration", time.Since(t),
			"agent", r.UserAgent())
	})
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
