package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates all data-access interfaces.
type Repository struct {
	User          UserRepository
	Theme         ThemeRepository
	SystemeOrgane SystemeOrganeRepository
	MemoFiche     MemoFicheRepository

	db *gorm.DB
}

// NewRepository wires the GORM implementations around one shared handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:          NewUserRepo(db),
		Theme:         NewThemeRepo(db),
		SystemeOrgane: NewSystemeOrganeRepo(db),
		MemoFiche:     NewMemoFicheRepo(db),
		db:            db,
	}
}

// Transaction runs fn against a Repository bound to a database transaction.
// Used where taxonomy resolution and fiche persistence must commit
// atomically: a theme row without its fiche is a correctness bug.
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		// In-memory test repositories have no transactional backing;
		// fall through to direct execution.
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
