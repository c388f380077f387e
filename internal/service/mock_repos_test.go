package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/riadhbennourdine/pharmia/internal/model"
	"github.com/riadhbennourdine/pharmia/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email || u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	user.CreatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByIdentifier(_ context.Context, identifier string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == identifier || u.Username == identifier {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	if u, ok := m.users[id]; ok {
		u.LastLogin = &at
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (m *mockUserRepo) ListByResponsable(_ context.Context, pharmacienID string) ([]model.User, error) {
	var out []model.User
	for _, u := range m.users {
		if u.Role == model.RolePreparateur &&
			u.PharmacienResponsableID != nil && *u.PharmacienResponsableID == pharmacienID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) UpdateLearningState(_ context.Context, id string, fn func(u *model.User) error) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if err := fn(u); err != nil {
		return nil, err
	}
	return u, nil
}

// ── Mock ThemeRepository ──

type mockThemeRepo struct {
	themes map[string]*model.Theme // key: nom
	seq    int
}

func newMockThemeRepo() *mockThemeRepo {
	return &mockThemeRepo{themes: make(map[string]*model.Theme)}
}

func (m *mockThemeRepo) FindOrCreateByNom(_ context.Context, nom, description string) (*model.Theme, error) {
	if t, ok := m.themes[nom]; ok {
		return t, nil
	}
	m.seq++
	t := &model.Theme{ThemeID: fmt.Sprintf("theme-%d", m.seq), Nom: nom, Description: description}
	m.themes[nom] = t
	return t, nil
}

func (m *mockThemeRepo) GetByNom(_ context.Context, nom string) (*model.Theme, error) {
	if t, ok := m.themes[nom]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockThemeRepo) List(_ context.Context) ([]model.Theme, error) {
	out := make([]model.Theme, 0, len(m.themes))
	for _, t := range m.themes {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nom < out[j].Nom })
	return out, nil
}

// ── Mock SystemeOrganeRepository ──

type mockSystemeRepo struct {
	systemes map[string]*model.SystemeOrgane
	seq      int
}

func newMockSystemeRepo() *mockSystemeRepo {
	return &mockSystemeRepo{systemes: make(map[string]*model.SystemeOrgane)}
}

func (m *mockSystemeRepo) FindOrCreateByNom(_ context.Context, nom, description string) (*model.SystemeOrgane, error) {
	if s, ok := m.systemes[nom]; ok {
		return s, nil
	}
	m.seq++
	s := &model.SystemeOrgane{SystemeID: fmt.Sprintf("systeme-%d", m.seq), Nom: nom, Description: description}
	m.systemes[nom] = s
	return s, nil
}

func (m *mockSystemeRepo) GetByNom(_ context.Context, nom string) (*model.SystemeOrgane, error) {
	if s, ok := m.systemes[nom]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSystemeRepo) List(_ context.Context) ([]model.SystemeOrgane, error) {
	out := make([]model.SystemeOrgane, 0, len(m.systemes))
	for _, s := range m.systemes {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nom < out[j].Nom })
	return out, nil
}

// ── Mock MemoFicheRepository ──

type mockMemoFicheRepo struct {
	fiches map[string]*model.MemoFiche
	order  []string // insertion order, newest last
	seq    int
}

func newMockMemoFicheRepo() *mockMemoFicheRepo {
	return &mockMemoFicheRepo{fiches: make(map[string]*model.MemoFiche)}
}

func (m *mockMemoFicheRepo) Create(_ context.Context, fiche *model.MemoFiche) error {
	if fiche.FicheID == "" {
		m.seq++
		fiche.FicheID = fmt.Sprintf("fiche-%d", m.seq)
	}
	if fiche.CreatedAt.IsZero() {
		fiche.CreatedAt = time.Now()
	}
	m.fiches[fiche.FicheID] = fiche
	m.order = append(m.order, fiche.FicheID)
	return nil
}

func (m *mockMemoFicheRepo) GetByID(_ context.Context, id string) (*model.MemoFiche, error) {
	if f, ok := m.fiches[id]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemoFicheRepo) Update(_ context.Context, fiche *model.MemoFiche) error {
	if _, ok := m.fiches[fiche.FicheID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.fiches[fiche.FicheID] = fiche
	return nil
}

func (m *mockMemoFicheRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.fiches[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.fiches, id)
	return nil
}

func (m *mockMemoFicheRepo) List(_ context.Context) ([]model.MemoFiche, error) {
	var out []model.MemoFiche
	for i := len(m.order) - 1; i >= 0; i-- {
		if f, ok := m.fiches[m.order[i]]; ok {
			out = append(out, *f)
		}
	}
	return out, nil
}

// ── Shared helpers ──

func newTestRepository() (*repository.Repository, *mockUserRepo, *mockThemeRepo, *mockSystemeRepo, *mockMemoFicheRepo) {
	userRepo := newMockUserRepo()
	themeRepo := newMockThemeRepo()
	systemeRepo := newMockSystemeRepo()
	ficheRepo := newMockMemoFicheRepo()
	repo := &repository.Repository{
		User:          userRepo,
		Theme:         themeRepo,
		SystemeOrgane: systemeRepo,
		MemoFiche:     ficheRepo,
	}
	return repo, userRepo, themeRepo, systemeRepo, ficheRepo
}
