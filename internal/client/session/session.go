// Package session holds the portal session state the directory client needs:
// the token issued by the host portal, the API root and the location path
// the panel is displayed under.
package session

import (
	"strings"

	"github.com/groupe-sii/lumext/internal/common"
)

// SessionContext is handed to the resolver and the directory client instead
// of reading ambient portal state.
type SessionContext struct {
	// Token is the opaque portal session token.
	Token string
	// APIRoot is the base URL of the portal API, without trailing slash.
	APIRoot string
	// Path is the current location path, e.g. /tenant/acme/lumext/user.
	Path string
}

// New builds a SessionContext, trimming the trailing slash of apiRoot.
func New(token, apiRoot, path string) SessionContext {
	return SessionContext{
		Token:   token,
		APIRoot: strings.TrimRight(apiRoot, "/"),
		Path:    path,
	}
}

// Tenant returns the tenant segment of the session path.
func (s SessionContext) Tenant() string {
	return TenantFromPath(s.Path)
}

// TenantFromPath returns the segment immediately following the first
// "/tenant/" marker, up to the next slash. It returns "" when the marker is
// missing or followed by nothing.
func TenantFromPath(path string) string {
	_, rest, ok := strings.Cut(path, common.TenantMarker)
	if !ok {
		return ""
	}
	tenant, _, _ := strings.Cut(rest, "/")
	return tenant
}
