package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/riadhbennourdine/pharmia/internal/repository"
)

var (
	ErrExportNoUsers      = errors.New("aucun apprenant à exporter")
	ErrExportGenerateFail = errors.New("génération du fichier Excel échouée")
)

// ExportService produces the admin Excel export of learner progress.
type ExportService interface {
	// ExportUsers returns the workbook bytes and a suggested filename.
	ExportUsers(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates the ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportUsers(ctx context.Context) (*bytes.Buffer, string, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("lecture des utilisateurs pour export", zap.Error(err))
		return nil, "", err
	}
	if len(users) == 0 {
		return nil, "", ErrExportNoUsers
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Apprenants"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Nom d'utilisateur", "Email", "Rôle", "Niveau",
		"Fiches lues", "Quiz réalisés", "Score moyen", "Badges", "Dernière connexion",
	}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	for row, u := range users {
		avg := "N/A"
		if len(u.QuizHistory) > 0 {
			avg = fmt.Sprintf("%.1f", u.QuizHistory.AverageScore())
		}
		lastLogin := ""
		if u.LastLogin != nil {
			lastLogin = u.LastLogin.Format("02/01/2006 15:04")
		}
		values := []interface{}{
			u.Username,
			u.Email,
			string(u.Role),
			string(u.SkillLevel),
			len(u.ReadFicheIDs),
			len(u.QuizHistory),
			avg,
			strings.Join(u.Badges, ", "),
			lastLogin,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", ErrExportGenerateFail
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("écriture du classeur Excel", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("apprenants-pharmia-%s.xlsx", time.Now().Format("2006-01-02"))
	return buf, filename, nil
}
