// Package orgctx resolves the organization id of the current portal session.
//
// The id is looked up once: the org list visible to the session is fetched,
// the tenant name is read from the session path and matched against the
// list. A successful resolution is cached for the lifetime of the resolver;
// failures are not, so the next call tries again.
package orgctx

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/groupe-sii/lumext/internal/client/session"
	"github.com/groupe-sii/lumext/internal/common"
	"github.com/groupe-sii/lumext/internal/logging"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrResolution matches every failed resolution.
	ErrResolution = errors.New("org resolution failed")
	// ErrNoTenantSegment: the session path carries no /tenant/ segment.
	ErrNoTenantSegment = errors.New("no tenant segment in session path")
	// ErrOrgNotFound: no listed org is named after the tenant.
	ErrOrgNotFound = errors.New("tenant org not listed")
)

// ResolutionError wraps the reason a resolution failed.
type ResolutionError struct {
	Reason string
	Err    error
}

func (e *ResolutionError) Error() string {
	if e.Err == nil {
		return "resolve org: " + e.Reason
	}
	return fmt.Sprintf("resolve org: %s: %v", e.Reason, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

func (e *ResolutionError) Is(target error) bool { return target == ErrResolution }

// Resolver yields the org id of the current session.
type Resolver interface {
	ResolveOrgID(ctx context.Context) (string, error)
}

// Org is one entry of the org list.
type Org struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

// OrgList is the body of GET /api/org.
type OrgList struct {
	Org []Org `json:"org"`
}

// Getter fetches and decodes a JSON resource relative to the API root.
// *restc.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, path string, out any) error
}

type resolver struct {
	api  Getter
	path string
	log  logging.Logger

	mu    sync.RWMutex
	orgID string

	group singleflight.Group
}

// NewResolver returns a memoizing Resolver for the session whose location
// path is sess.Path.
func NewResolver(api Getter, sess session.SessionContext, log logging.Logger) Resolver {
	if log == nil {
		log = logging.Nop()
	}
	return &resolver{api: api, path: sess.Path, log: log}
}

// ResolveOrgID returns the cached id, or resolves it. Concurrent callers
// during the first resolution share a single org list fetch. The shared
// fetch outlives any one caller's cancellation; a cancelled caller returns
// early while the others keep waiting.
func (r *resolver) ResolveOrgID(ctx context.Context) (string, error) {
	r.mu.RLock()
	id := r.orgID
	r.mu.RUnlock()
	if id != "" {
		return id, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan("org", func() (any, error) {
		r.mu.RLock()
		cached := r.orgID
		r.mu.RUnlock()
		if cached != "" {
			return cached, nil
		}

		id, err := r.resolve(fetchCtx)
		if err != nil {
			return "", err
		}

		r.mu.Lock()
		if r.orgID == "" {
			r.orgID = id
		}
		id = r.orgID
		r.mu.Unlock()
		return id, nil
	})

	select {
	case <-ctx.Done():
		return "", &ResolutionError{Reason: "wait for org list", Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (r *resolver) resolve(ctx context.Context) (string, error) {
	var list OrgList
	if err := r.api.Get(ctx, common.OrgsPath, &list); err != nil {
		r.log.Warn(ctx, "org list fetch failed", "error", err)
		return "", &ResolutionError{Reason: "fetch org list", Err: err}
	}

	tenant := session.TenantFromPath(r.path)
	if tenant == "" {
		return "", &ResolutionError{Reason: fmt.Sprintf("path %q", r.path), Err: ErrNoTenantSegment}
	}

	for _, org := range list.Org {
		if org.Name != tenant {
			continue
		}
		id := common.OrgIDFromHref(org.Href)
		if id == "" {
			return "", &ResolutionError{Reason: fmt.Sprintf("org %q has no id in href %q", tenant, org.Href)}
		}
		r.log.Debug(ctx, "org resolved", "tenant", tenant, "org_id", id)
		return id, nil
	}

	return "", &ResolutionError{Reason: fmt.Sprintf("tenant %q among %d orgs", tenant, len(list.Org)), Err: ErrOrgNotFound}
}
