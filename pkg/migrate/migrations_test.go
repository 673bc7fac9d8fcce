package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/obitflow/obitflow-backend/pkg/migrate"
)

func TestValidateShippedMigrations(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
}

func TestCasesMigrationContainsSchema(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_cases_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no cases migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE cases",
		"home_id           uuid NOT NULL",
		"case_number       text",
		"created_at        timestamptz",
		"idx_cases_home_created",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
