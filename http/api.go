package http

import (
	"net/http"
	"strings"

	"github.com/fwojciec/permitsearch"
)

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Platform permitsearch.Platform `json:"platform"`
	URL      string                `json:"url"`
}

// RegistryResponse is the body of GET /api/registry.
type RegistryResponse struct {
	Checksum string                                        `json:"checksum"`
	States   map[permitsearch.State]permitsearch.StateData `json:"states"`
}

func (s *Server) handleAPIStates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, permitsearch.States())
}

// handleAPILookup resolves ?state=&zipcode=. The state is passed through
// as given (upper-cased) so the resolver reports a missing or unknown state.
func (s *Server) handleAPILookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := permitsearch.State(strings.ToUpper(strings.TrimSpace(q.Get("state"))))

	data, err := s.resolver.Resolve(state, q.Get("zipcode"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleAPISearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	platform := permitsearch.DefaultPlatform
	if name := q.Get("platform"); name != "" {
		p, err := permitsearch.ParsePlatform(name)
		if err != nil {
			writeError(w, r, s.logger, err)
			return
		}
		platform = p
	}

	u, err := permitsearch.BuildSearchURL(platform, q.Get("address"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Platform: platform, URL: u})
}

// handleAPIRegistry returns all tables with the registry checksum as ETag.
func (s *Server) handleAPIRegistry(w http.ResponseWriter, r *http.Request) {
	etag := `"` + s.registry.Checksum() + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=300")

	if etagMatch(r.Header.Values("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	writeJSON(w, http.StatusOK, RegistryResponse{
		Checksum: s.registry.Checksum(),
		States:   s.registry.Data(),
	})
}

// etagMatch reports whether any If-None-Match value matches etag. Values may
// hold comma-separated lists; comparison is weak, so W/ prefixes are ignored.
func etagMatch(values []string, etag string) bool {
	etag = strings.TrimPrefix(etag, "W/")
	for _, v := range values {
		for _, candidate := range strings.Split(v, ",") {
			candidate = strings.TrimSpace(candidate)
			if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
				return true
			}
		}
	}
	return false
}
