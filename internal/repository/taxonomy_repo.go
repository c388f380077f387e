package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/riadhbennourdine/pharmia/internal/model"
)

// ThemeRepository resolves themes by display name with find-or-create
// semantics.
type ThemeRepository interface {
	// FindOrCreateByNom returns the row named nom, inserting it first if
	// absent. Safe under concurrent creation: the insert is
	// ON CONFLICT DO NOTHING against the unique nom index, and the
	// following read adopts whichever row won.
	FindOrCreateByNom(ctx context.Context, nom, description string) (*model.Theme, error)
	GetByNom(ctx context.Context, nom string) (*model.Theme, error)
	List(ctx context.Context) ([]model.Theme, error)
}

// SystemeOrganeRepository mirrors ThemeRepository for the second taxonomy
// dimension.
type SystemeOrganeRepository interface {
	FindOrCreateByNom(ctx context.Context, nom, description string) (*model.SystemeOrgane, error)
	GetByNom(ctx context.Context, nom string) (*model.SystemeOrgane, error)
	List(ctx context.Context) ([]model.SystemeOrgane, error)
}

type themeRepo struct {
	db *gorm.DB
}

// NewThemeRepo creates the GORM-backed ThemeRepository.
func NewThemeRepo(db *gorm.DB) ThemeRepository {
	return &themeRepo{db: db}
}

func (r *themeRepo) FindOrCreateByNom(ctx context.Context, nom, description string) (*model.Theme, error) {
	row := model.Theme{Nom: nom, Description: description}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "nom"}},
			DoNothing: true,
		}).
		Create(&row).Error; err != nil {
		return nil, err
	}
	// Re-read regardless: on conflict the insert assigned no id, and a
	// concurrent winner's row must be adopted.
	return r.GetByNom(ctx, nom)
}

func (r *themeRepo) GetByNom(ctx context.Context, nom string) (*model.Theme, error) {
	var row model.Theme
	if err := r.db.WithContext(ctx).Where("nom = ?", nom).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *themeRepo) List(ctx context.Context) ([]model.Theme, error) {
	var rows []model.Theme
	err := r.db.WithContext(ctx).Order("nom ASC").Find(&rows).Error
	return rows, err
}

type systemeOrganeRepo struct {
	db *gorm.DB
}

// NewSystemeOrganeRepo creates the GORM-backed SystemeOrganeRepository.
func NewSystemeOrganeRepo(db *gorm.DB) SystemeOrganeRepository {
	return &systemeOrganeRepo{db: db}
}

func (r *systemeOrganeRepo) FindOrCreateByNom(ctx context.Context, nom, description string) (*model.SystemeOrgane, error) {
	row := model.SystemeOrgane{Nom: nom, Description: description}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "nom"}},
			DoNothing: true,
		}).
		Create(&row).Error; err != nil {
		return nil, err
	}
	return r.GetByNom(ctx, nom)
}

func (r *systemeOrganeRepo) GetByNom(ctx context.Context, nom string) (*model.SystemeOrgane, error) {
	var row model.SystemeOrgane
	if err := r.db.WithContext(ctx).Where("nom = ?", nom).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *systemeOrganeRepo) List(ctx context.Context) ([]model.SystemeOrgane, error) {
	var rows []model.SystemeOrgane
	err := r.db.WithContext(ctx).Order("nom ASC").Find(&rows).Error
	return rows, err
}
