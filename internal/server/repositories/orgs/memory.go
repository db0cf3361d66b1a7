package orgs

import (
	"context"
	"sort"
	"sync"

	"github.com/groupe-sii/lumext/internal/common"
	"github.com/groupe-sii/lumext/internal/server/models"
)

type MemoryRepository struct {
	mu   sync.RWMutex
	byID map[string]models.Org
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: map[string]models.Org{}}
}

func (r *MemoryRepository) List(context.Context) ([]models.Org, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Org, 0, len(r.byID))
	for _, o := range r.byID {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Org, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &o, nil
}

func (r *MemoryRepository) GetByName(_ context.Context, name string) (*models.Org, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.byID {
		if o.Name == name {
			return &o, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) Create(_ context.Context, org *models.Org) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[org.ID]; ok {
		return common.ErrorAlreadyExists
	}
	for _, o := range r.byID {
		if o.Name == org.Name {
			return common.ErrorAlreadyExists
		}
	}
	r.byID[org.ID] = *org
	return nil
}
