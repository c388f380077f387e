package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/riadhbennourdine/pharmia/internal/model"
)

// MemoFicheRepository is the content-store access interface.
type MemoFicheRepository interface {
	Create(ctx context.Context, fiche *model.MemoFiche) error
	GetByID(ctx context.Context, id string) (*model.MemoFiche, error)
	Update(ctx context.Context, fiche *model.MemoFiche) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.MemoFiche, error)
}

type memoFicheRepo struct {
	db *gorm.DB
}

// NewMemoFicheRepo creates the GORM-backed MemoFicheRepository.
func NewMemoFicheRepo(db *gorm.DB) MemoFicheRepository {
	return &memoFicheRepo{db: db}
}

func (r *memoFicheRepo) Create(ctx context.Context, fiche *model.MemoFiche) error {
	return r.db.WithContext(ctx).Create(fiche).Error
}

func (r *memoFicheRepo) GetByID(ctx context.Context, id string) (*model.MemoFiche, error) {
	var fiche model.MemoFiche
	if err := r.db.WithContext(ctx).Where("fiche_id = ?", id).First(&fiche).Error; err != nil {
		return nil, err
	}
	return &fiche, nil
}

func (r *memoFicheRepo) Update(ctx context.Context, fiche *model.MemoFiche) error {
	return r.db.WithContext(ctx).Save(fiche).Error
}

func (r *memoFicheRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("fiche_id = ?", id).Delete(&model.MemoFiche{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *memoFicheRepo) List(ctx context.Context) ([]model.MemoFiche, error) {
	var fiches []model.MemoFiche
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&fiches).Error
	return fiches, err
}
