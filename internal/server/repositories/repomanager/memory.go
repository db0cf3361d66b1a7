package repomanager

import (
	"context"
	"sync"

	"github.com/groupe-sii/lumext/internal/server/repositories/orgs"
	"github.com/groupe-sii/lumext/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. WithTx only
// serializes callers; a failing fn leaves its earlier writes in place.
type MemoryRepositoryManager struct {
	txMu  sync.Mutex
	repos Repos
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{repos: Repos{
		Orgs:  orgs.NewMemoryRepository(),
		Users: users.NewMemoryRepository(),
	}}
}

func (m *MemoryRepositoryManager) Repos() Repos {
	return m.repos
}

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, m.repos)
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }
