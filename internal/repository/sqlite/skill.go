package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ebostrom/personal-site/internal/model"
	"github.com/ebostrom/personal-site/internal/repository"
)

// SkillDB implements repository.SkillRepository.
type SkillDB struct {
	conn *sql.DB
}

var _ repository.SkillRepository = (*SkillDB)(nil)

// List returns the full skill catalog ordered by id. The catalog is seeded
// once and read-only, so there is no pagination.
func (db *SkillDB) List(ctx context.Context) ([]model.Skill, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, description, type FROM skills ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing skills: %w", err)
	}
	defer rows.Close()

	skills := []model.Skill{}
	for rows.Next() {
		var s model.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Type); err != nil {
			return nil, fmt.Errorf("sqlite: scanning skill: %w", err)
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating skills: %w", err)
	}

	return skills, nil
}
