package users

import (
	"context"
	"sync"
	"time"

	"github.com/groupe-sii/lumext/internal/common"
	"github.com/groupe-sii/lumext/internal/server/models"
)

// MemoryRepository keeps users in insertion order, per org.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	byOrg  map[string][]models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byOrg: map[string][]models.User{}}
}

func (r *MemoryRepository) List(_ context.Context, orgID string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, len(r.byOrg[orgID]))
	copy(out, r.byOrg[orgID])
	return out, nil
}

func (r *MemoryRepository) index(orgID, login string) int {
	for i, u := range r.byOrg[orgID] {
		if u.Login == login {
			return i
		}
	}
	return -1
}

func (r *MemoryRepository) Get(_ context.Context, orgID, login string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.index(orgID, login)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	u := r.byOrg[orgID][i]
	return &u, nil
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index(user.OrgID, user.Login) >= 0 {
		return nil, common.ErrorAlreadyExists
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now().UTC()
	r.byOrg[user.OrgID] = append(r.byOrg[user.OrgID], *user)
	return user, nil
}

func (r *MemoryRepository) Update(_ context.Context, orgID, login string, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(orgID, login)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	if user.Login != login && r.index(orgID, user.Login) >= 0 {
		return nil, common.ErrorAlreadyExists
	}
	cur := r.byOrg[orgID][i]
	user.ID, user.OrgID, user.CreatedAt = cur.ID, orgID, cur.CreatedAt
	r.byOrg[orgID][i] = *user
	return user, nil
}

func (r *MemoryRepository) Delete(_ context.Context, orgID, login string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(orgID, login)
	if i < 0 {
		return common.ErrorNotFound
	}
	list := r.byOrg[orgID]
	r.byOrg[orgID] = append(list[:i:i], list[i+1:]...)
	return nil
}
