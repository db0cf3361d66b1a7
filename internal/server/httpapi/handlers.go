package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/groupe-sii/lumext/internal/common"
	"github.com/groupe-sii/lumext/internal/server/services"
)

const maxBodyBytes = 1 << 20

type orgRef struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

type orgList struct {
	Org []orgRef `json:"org"`
}

type sessionBody struct {
	User string `json:"user"`
	Org  string `json:"org"`
}

type deleteBody struct {
	Status string `json:"status"`
}

// login opens a session from basic credentials "login@org".
func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	user, password, ok := r.BasicAuth()
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing credentials.")
		return
	}
	login, org := user, ""
	if i := strings.LastIndex(user, "@"); i >= 0 {
		login, org = user[:i], user[i+1:]
	}

	token, err := h.sessions.Login(r.Context(), login, org, password)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.Header().Set(common.AuthHeaderName, token)
	writeJSON(w, http.StatusOK, sessionBody{User: login, Org: org})
}

func (h *handler) base(r *http.Request) string {
	if h.baseURL != "" {
		return h.baseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func (h *handler) listOrgs(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.orgs.Visible(r.Context(), claimsFrom(r.Context()))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	out := orgList{Org: make([]orgRef, 0, len(orgs))}
	base := h.base(r)
	for _, o := range orgs {
		out.Org = append(out.Org, orgRef{Name: o.Name, Href: common.OrgHref(base, o.ID)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.dir.List(r.Context(), mux.Vars(r)["orgId"])
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *handler) getUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	u, err := h.dir.Get(r.Context(), vars["orgId"], vars["login"])
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func decodeInput(r *http.Request) (services.UserInput, error) {
	var in services.UserInput
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&in)
	if err == io.EOF {
		err = nil
	}
	if err != nil {
		return in, services.NewBadRequest("Invalid request body.")
	}
	return in, nil
}

func (h *handler) createUser(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	u, err := h.dir.Create(r.Context(), mux.Vars(r)["orgId"], in)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *handler) updateUser(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	vars := mux.Vars(r)
	u, err := h.dir.Update(r.Context(), vars["orgId"], vars["login"], in)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.dir.Delete(r.Context(), vars["orgId"], vars["login"]); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteBody{Status: "success"})
}
