package common

import (
	"net/url"
	"strings"
)

// OrgsPath lists the organizations visible to the caller.
const OrgsPath = "/api/org"

// SessionsPath opens a portal session.
const SessionsPath = "/api/sessions"

// UsersPath is the user collection of one org.
func UsersPath(orgID string) string {
	return OrgsPath + "/" + url.PathEscape(orgID) + "/lumext/user"
}

// UserPath addresses a single user of one org.
func UserPath(orgID, login string) string {
	return UsersPath(orgID) + "/" + url.PathEscape(login)
}

// OrgHref builds the resource reference of an org as listed by /api/org.
func OrgHref(base, orgID string) string {
	return strings.TrimRight(base, "/") + OrgsPath + "/" + orgID
}

// OrgIDFromHref returns the part of href following the first "/org/" marker,
// or "" when the marker is absent.
func OrgIDFromHref(href string) string {
	_, id, ok := strings.Cut(href, OrgMarker)
	if !ok {
		return ""
	}
	return id
}
