package sqlite

import (
	"context"
	"fmt"

	"github.com/ebostrom/personal-site/internal/auth"
	"github.com/ebostrom/personal-site/internal/model"
)

// seedUsernames are the accounts created on a fresh database. Every seeded
// account gets the password "pass"; "admin" gets the admin role.
var seedUsernames = []string{"admin", "jerome", "mira", "linus", "susanne"}

var seedComments = []string{
	"First! Nice site.",
	"The about page loads fast.",
	"Looking forward to more posts.",
	"The skills list is a good idea.",
	"Greetings from the comment board.",
}

var seedSkills = []model.Skill{
	{Name: "Go", Description: "Backend services and tooling", Type: "programming"},
	{Name: "JavaScript", Description: "Interactive pages and small SPAs", Type: "frontend"},
	{Name: "SQL", Description: "Schema design and queries on SQLite/Postgres", Type: "database"},
	{Name: "HTML & CSS", Description: "Semantic markup and responsive layout", Type: "frontend"},
	{Name: "Linux", Description: "Deployment, shell scripting, debugging", Type: "tooling"},
}

// Seed populates a fresh database with the demo fixture: five users, five
// comments by jerome, five skills. It is a no-op once any user exists, so
// restarting the server never duplicates data.
func (db *DB) Seed(ctx context.Context, passwords *auth.PasswordService) error {
	users := db.Users()

	n, err := users.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("sqlite: checking seed state: %w", err)
	}
	if n > 0 {
		return nil
	}

	var jeromeID int64
	for _, username := range seedUsernames {
		hash, err := passwords.Hash("pass")
		if err != nil {
			return fmt.Errorf("sqlite: hashing seed password for %q: %w", username, err)
		}

		role := model.RoleRegular
		if username == "admin" {
			role = model.RoleAdmin
		}

		u := &model.User{Username: username, PasswordHash: hash, Role: role}
		if err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("sqlite: seeding user %q: %w", username, err)
		}
		if username == "jerome" {
			jeromeID = u.ID
		}
	}

	comments := db.Comments()
	for _, text := range seedComments {
		c := &model.Comment{UserID: jeromeID, Text: text}
		if err := comments.Create(ctx, c); err != nil {
			return fmt.Errorf("sqlite: seeding comment: %w", err)
		}
	}

	for _, s := range seedSkills {
		if _, err := db.conn.ExecContext(ctx,
			`INSERT INTO skills (name, description, type) VALUES (?, ?, ?)`,
			s.Name, s.Description, s.Type,
		); err != nil {
			return fmt.Errorf("sqlite: seeding skill %q: %w", s.Name, err)
		}
	}

	return nil
}
