package http

import (
	_ "embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/fwojciec/permitsearch"
)

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

type stateButton struct {
	permitsearch.StateInfo
	Selected bool
}

type pageData struct {
	States        []stateButton
	SelectedState permitsearch.State
	Zipcode       string
	ZipcodeMaxLen int
	Result        *permitsearch.CountyData
	Error         string
	Address       string
	PropertyError string
	Platforms     []permitsearch.Platform
}

func newPageData(st pageState) pageData {
	data := pageData{
		SelectedState: st.Lookup.State,
		Zipcode:       st.Lookup.Zipcode,
		ZipcodeMaxLen: permitsearch.ZipcodeMaxLen,
		Result:        st.Lookup.Result,
		Error:         st.Lookup.ErrorMessage(),
		Address:       st.Address,
		PropertyError: permitsearch.ErrorMessage(st.PropertyErr),
		Platforms:     permitsearch.Platforms(),
	}
	for _, info := range permitsearch.States() {
		data.States = append(data.States, stateButton{
			StateInfo: info,
			Selected:  info.Code == st.Lookup.State,
		})
	}
	return data
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	_, st := s.sessions.load(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, newPageData(st)); err != nil {
		s.logger.Error("render page", "err", err)
	}
}

// handleSelectState selects the posted state. Unavailable or unknown states
// are ignored, matching the disabled buttons on the page.
func (s *Server) handleSelectState(w http.ResponseWriter, r *http.Request) {
	id, st := s.sessions.load(w, r)

	state := permitsearch.State(strings.ToUpper(strings.TrimSpace(r.PostFormValue("state"))))
	st.Lookup = permitsearch.SelectState(st.Lookup, state)

	s.sessions.save(id, st)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	id, st := s.sessions.load(w, r)

	st.Lookup = permitsearch.SetZipcode(st.Lookup, r.PostFormValue("zipcode"))
	st.Lookup = permitsearch.Search(st.Lookup, s.resolver)

	s.sessions.save(id, st)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handlePropertySearch redirects to the listing site's search page. A blank
// address is reported on the page instead.
func (s *Server) handlePropertySearch(w http.ResponseWriter, r *http.Request) {
	id, st := s.sessions.load(w, r)

	platform := permitsearch.DefaultPlatform
	if name := r.PostFormValue("platform"); name != "" {
		p, err := permitsearch.ParsePlatform(name)
		if err != nil {
			writeError(w, r, s.logger, err)
			return
		}
		platform = p
	}

	st.Address = r.PostFormValue("address")
	u, err := permitsearch.BuildSearchURL(platform, st.Address)
	st.PropertyErr = err
	s.sessions.save(id, st)

	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, u, http.StatusSeeOther)
}
