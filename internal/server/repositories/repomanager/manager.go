// Package repomanager opens the configured record-store backend and hands
// out the repositories built on top of it.
package repomanager

import (
	"github.com/dmitrijs2005/yogatrack/internal/recordstore"
	"github.com/dmitrijs2005/yogatrack/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/yogatrack/internal/server/repositories/achievements"
	"github.com/dmitrijs2005/yogatrack/internal/server/repositories/challenges"
	"github.com/dmitrijs2005/yogatrack/internal/server/repositories/practice"
	"github.com/dmitrijs2005/yogatrack/internal/server/repositories/progress"
	"github.com/dmitrijs2005/yogatrack/internal/server/repositories/sessions"
)

type RepositoryManager interface {
	Accounts() accounts.Repository
	Sessions() sessions.Repository
	Progress() progress.Repository
	Practice() practice.Repository
	Achievements() achievements.Repository
	Challenges() challenges.Repository
	Close() error
}

// StoreRepositoryManager serves every repository from one recordstore.Store.
type StoreRepositoryManager struct {
	store *recordstore.Store

	accounts     *accounts.StoreRepository
	sessions     *sessions.StoreRepository
	progress     *progress.StoreRepository
	practice     *practice.StoreRepository
	achievements *achievements.StoreRepository
	challenges   *challenges.StoreRepository
}

func NewStoreRepositoryManager(s *recordstore.Store) *StoreRepositoryManager {
	return &StoreRepositoryManager{
		store:        s,
		accounts:     accounts.NewStoreRepository(s),
		sessions:     sessions.NewStoreRepository(s),
		progress:     progress.NewStoreRepository(s),
		practice:     practice.NewStoreRepository(s),
		achievements: achievements.NewStoreRepository(s),
		challenges:   challenges.NewStoreRepository(s),
	}
}

// NewInMemory is a manager over a fresh memory backend.
func NewInMemory() *StoreRepositoryManager {
	return NewStoreRepositoryManager(recordstore.New(recordstore.NewMemoryBackend()))
}

func (m *StoreRepositoryManager) Accounts() accounts.Repository         { return m.accounts }
func (m *StoreRepositoryManager) Sessions() sessions.Repository         { return m.sessions }
func (m *StoreRepositoryManager) Progress() progress.Repository         { return m.progress }
func (m *StoreRepositoryManager) Practice() practice.Repository         { return m.practice }
func (m *StoreRepositoryManager) Achievements() achievements.Repository { return m.achievements }
func (m *StoreRepositoryManager) Challenges() challenges.Repository     { return m.challenges }

func (m *StoreRepositoryManager) Close() error {
	return m.store.Close()
}
