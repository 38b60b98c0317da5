package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/quilt/pkg/cache"
	"github.com/matzehuels/quilt/pkg/errors"
	"github.com/matzehuels/quilt/pkg/pipeline"
	"github.com/matzehuels/quilt/pkg/sink"
)

const immutable = "public, max-age=31536000, immutable"

type errorResponse struct {
	Error   errors.Code `json:"error"`
	Message string      `json:"message"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s", r.URL.Path))
}

func (s *Server) handleQuilt(w http.ResponseWriter, r *http.Request) {
	opts, err := s.parseOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := opts.Formats[0]

	etag := s.etag(opts, format)
	if match := r.Header.Get("If-None-Match"); match != "" && etagMatches(match, etag) {
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", immutable)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	contentType := sink.ContentType(format)
	if opts.Base64 {
		contentType = "text/plain; charset=utf-8"
	}
	disposition := fmt.Sprintf(`filename="identicon.%s"`, sink.Extension(format))
	if r.URL.Query().Get("download") == "1" {
		disposition = "attachment; " + disposition
	}

	body := res.Artifacts[format]
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", immutable)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Write(body)
}

func (s *Server) handleColors(w http.ResponseWriter, r *http.Request) {
	opts, err := s.parseOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{sink.FormatJSON}
	opts.Base64 = false

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", sink.ContentType(sink.FormatJSON))
	w.Header().Set("Cache-Control", immutable)
	w.Write(res.Artifacts[sink.FormatJSON])
}

// parseOptions builds validated pipeline options from the path and query.
func (s *Server) parseOptions(r *http.Request) (pipeline.Options, error) {
	seed, err := seedParam(r)
	if err != nil {
		return pipeline.Options{}, err
	}

	q := r.URL.Query()
	opts := pipeline.Options{
		Seed:      seed,
		GridSize:  s.defaults.GridSize,
		BlockSize: s.defaults.BlockSize,
		Algorithm: s.defaults.Algorithm,
		Scale:     s.defaults.Scale,
		Formats:   []string{sink.DefaultFormat},
		Base64:    q.Get("base64") == "1",
		Limits:    s.limits,
		Logger:    s.logger.With("request_id", RequestID(r.Context())),
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"grid", &opts.GridSize},
		{"block", &opts.BlockSize},
		{"scale", &opts.Scale},
	}
	for _, p := range ints {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %q", p.name, v)
		}
		*p.dst = n
	}
	if v := q.Get("algorithm"); v != "" {
		opts.Algorithm = strings.ToLower(v)
	}
	if v := q.Get("format"); v != "" {
		opts.Formats = []string{strings.ToLower(v)}
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// seedParam returns the decoded {seed} segment. chi matches against
// URL.RawPath when it is set and URL.Path otherwise, so the segment needs
// unescaping only in the first case.
func seedParam(r *http.Request) (string, error) {
	seed := chi.URLParam(r, "seed")
	if r.URL.RawPath == "" {
		return seed, nil
	}
	decoded, err := url.PathUnescape(seed)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidSeed, err, "malformed seed")
	}
	return decoded, nil
}

// etag derives a strong validator from the artifact cache key.
func (s *Server) etag(opts pipeline.Options, format string) string {
	key := s.runner.Keyer.ArtifactKey(opts.ArtifactKeyOpts(format))
	if opts.Base64 {
		key += ":base64"
	}
	return `"` + cache.Hash([]byte(key))[:32] + `"`
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	switch {
	case errors.IsInvalid(err):
		status = http.StatusBadRequest
	case code == errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case r.Context().Err() != nil:
		status = http.StatusServiceUnavailable
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}

	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "err", err)
		msg = http.StatusText(status)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: code, Message: msg})
}
