package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ebostrom/personal-site/internal/model"
	"github.com/ebostrom/personal-site/internal/repository"
)

// SkillService reads the static skill catalog.
type SkillService struct {
	skills repository.SkillRepository
	logger *slog.Logger
}

// NewSkillService creates a SkillService.
func NewSkillService(skills repository.SkillRepository, logger *slog.Logger) *SkillService {
	return &SkillService{
		skills: skills,
		logger: logger,
	}
}

// List returns every skill in catalog order.
func (s *SkillService) List(ctx context.Context) ([]model.Skill, error) {
	skills, err := s.skills.List(ctx)
	if err != nil {
		s.logger.Error("failed to list skills", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing skills: %w", err)
	}
	return skills, nil
}
