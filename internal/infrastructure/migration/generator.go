package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"cardly/internal/shared/logger"
)

var migrationNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Generator writes new goose SQL scripts into the source tree.
type Generator struct {
	scriptsPath string
	logger      logger.Interface
	now         func() time.Time
}

// NewGenerator creates a new migration generator
func NewGenerator(scriptsPath string, log logger.Interface) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      log.With("component", "migration.generator"),
		now:         time.Now,
	}
}

// CreateMigration writes <timestamp>_<name>.sql with empty Up and Down sections
// and returns its path.
func (g *Generator) CreateMigration(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !migrationNamePattern.MatchString(name) {
		return "", fmt.Errorf("migration name must be snake_case: %q", name)
	}

	if err := os.MkdirAll(g.scriptsPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create scripts directory: %w", err)
	}

	now := g.now().UTC()
	path := filepath.Join(g.scriptsPath, fmt.Sprintf("%s_%s.sql", now.Format("20060102150405"), name))
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("migration file already exists: %s", path)
	}

	if err := os.WriteFile(path, []byte(template(name, now)), 0644); err != nil {
		return "", fmt.Errorf("failed to write migration file: %w", err)
	}

	g.logger.Infow("migration file created", "file", path)
	return path, nil
}

func template(name string, created time.Time) string {
	return fmt.Sprintf(`-- Migration: %s
-- Created: %s

-- +goose Up
-- +goose StatementBegin
SELECT 'up SQL query';
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
SELECT 'down SQL query';
-- +goose StatementEnd
`, name, created.Format("2006-01-02 15:04:05"))
}
