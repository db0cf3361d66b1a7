// Package common contains wire-level constants and sentinel errors shared by
// the directory client and the development backend.
package common

// AuthHeaderName carries the portal session token on every request.
const AuthHeaderName = "x-vcloud-authorization"

// MediaType is the versioned media type requested by the client and
// announced by the backend.
const MediaType = "application/*+json;version=31.0"

// RequestIDHeaderName correlates a client request with backend logs.
const RequestIDHeaderName = "X-Request-Id"

// TenantMarker precedes the tenant name in portal location paths.
const TenantMarker = "/tenant/"

// OrgMarker precedes the org id in an org resource reference.
const OrgMarker = "/org/"
