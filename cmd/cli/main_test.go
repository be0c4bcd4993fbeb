package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/EncoreMusictech/encore-live-sub011/pkg/models"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty"
)

func runCLI(t *testing.T, dbPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--db", dbPath, "--pipeline-config", ""}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func listWorks(t *testing.T, dbPath string) []models.CatalogWork {
	t.Helper()
	out, _, err := runCLI(t, dbPath, "work", "list", "--json")
	if err != nil {
		t.Fatalf("work list --json: %v", err)
	}
	var works []models.CatalogWork
	if err := json.Unmarshal([]byte(out), &works); err != nil {
		t.Fatalf("decode work list: %v (%q)", err, out)
	}
	return works
}

func TestCLIWorkLifecycle(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli.sqlite3")

	out, _, err := runCLI(t, dbPath, "work", "list")
	if err != nil {
		t.Fatalf("work list: %v", err)
	}
	if !strings.Contains(out, "Catalog is empty") {
		t.Fatalf("expected empty catalog message, got %q", out)
	}

	out, _, err = runCLI(t, dbPath, "work", "add",
		"--title", "Midnight Dreams",
		"--iswc", "T1234567890",
		"--aka", "Midnight Dream",
		"--writer", "Alex Rivera:50:composer",
		"--writer", "Sam Cole:50")
	if err != nil {
		t.Fatalf("work add: %v", err)
	}
	if !strings.Contains(out, "Work registered") || !strings.Contains(out, "T-123.456.789-0") {
		t.Fatalf("unexpected work add output: %q", out)
	}

	works := listWorks(t, dbPath)
	if len(works) != 1 {
		t.Fatalf("expected 1 work, got %d", len(works))
	}
	if len(works[0].Writers) != 2 || works[0].Writers[0].Role != "composer" {
		t.Fatalf("unexpected writers: %+v", works[0].Writers)
	}

	out, _, err = runCLI(t, dbPath, "work", "list")
	if err != nil {
		t.Fatalf("work list: %v", err)
	}
	if !strings.Contains(out, "Midnight Dreams") || !strings.Contains(out, "Alex Rivera, Sam Cole") {
		t.Fatalf("work list missing work: %q", out)
	}

	out, _, err = runCLI(t, dbPath, "work", "delete", works[0].ID)
	if err != nil {
		t.Fatalf("work delete: %v", err)
	}
	if !strings.Contains(out, "Deleted work") {
		t.Fatalf("unexpected delete output: %q", out)
	}

	if _, _, err := runCLI(t, dbPath, "work", "delete", works[0].ID); err == nil {
		t.Fatal("expected error deleting a missing work")
	}
}

func TestCLIWorkAddRequiresTitle(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli.sqlite3")

	if _, _, err := runCLI(t, dbPath, "work", "add", "--iswc", "T1234567890"); err == nil {
		t.Fatal("expected missing --title to fail")
	}
	if _, _, err := runCLI(t, dbPath, "work", "add", "--title", "X", "--writer", ":50"); err == nil {
		t.Fatal("expected nameless writer to fail")
	}
}

func TestCLIMatch(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli.sqlite3")

	if _, _, err := runCLI(t, dbPath, "work", "add", "--title", "Midnight Dreams", "--iswc", "T-123456789-0", "--writer", "Alex Rivera"); err != nil {
		t.Fatalf("work add: %v", err)
	}
	if _, _, err := runCLI(t, dbPath, "work", "add", "--title", "Golden Hour", "--writer", "Sam Cole"); err != nil {
		t.Fatalf("work add: %v", err)
	}

	out, _, err := runCLI(t, dbPath, "match", "--title", "Midnight Dreams", "--artist", "Alex Rivera", "--iswc", "T-123456789-0")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if !strings.Contains(out, "Midnight Dreams") || !strings.Contains(out, "exact") {
		t.Fatalf("unexpected match output: %q", out)
	}

	out, _, err = runCLI(t, dbPath, "match", "--title", "Zzyzx", "--min", "0.99")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if !strings.Contains(out, "No works") {
		t.Fatalf("expected no-match message, got %q", out)
	}

	if _, _, err := runCLI(t, dbPath, "match"); err == nil {
		t.Fatal("expected match without --title to fail")
	}
}

func TestCLIMetaAndPipeline(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli.sqlite3")

	if _, _, err := runCLI(t, dbPath, "work", "add", "--title", "Midnight Dreams", "--iswc", "T-000000001-1"); err != nil {
		t.Fatalf("work add: %v", err)
	}
	id := listWorks(t, dbPath)[0].ID

	out, _, err := runCLI(t, dbPath, "meta", "set", id,
		"--completeness", "0.9",
		"--status", "pro_verified",
		"--publisher", "Encore Publishing=100",
		"--writer-split", "Alex Rivera=100",
		"--registration", "BMI:12345")
	if err != nil {
		t.Fatalf("meta set: %v", err)
	}
	if !strings.Contains(out, "Saved pipeline metadata") {
		t.Fatalf("unexpected meta output: %q", out)
	}

	if _, _, err := runCLI(t, dbPath, "meta", "set", id, "--status", "certified"); err == nil {
		t.Fatal("expected unknown status to fail")
	}
	if _, _, err := runCLI(t, dbPath, "meta", "set", id, "--completeness", "1.5"); err == nil {
		t.Fatal("expected out-of-range completeness to fail")
	}

	out, _, err = runCLI(t, dbPath, "pipeline", id, "--json")
	if err != nil {
		t.Fatalf("pipeline <id>: %v", err)
	}
	var song models.SongPipelineResult
	if err := json.Unmarshal([]byte(out), &song); err != nil {
		t.Fatalf("decode song pipeline: %v", err)
	}
	if song.Confidence != models.ConfidenceHigh || song.Collectability != 1 || song.CollectiblePipeline <= 0 {
		t.Fatalf("unexpected song pipeline: %+v", song)
	}

	out, _, err = runCLI(t, dbPath, "pipeline", "--detail")
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	if !strings.Contains(out, "Catalog pipeline") || !strings.Contains(out, "Midnight Dreams") {
		t.Fatalf("unexpected catalog output: %q", out)
	}
}

func TestCLIReconcile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "cli.sqlite3")

	if _, _, err := runCLI(t, dbPath, "work", "add", "--title", "Midnight Dreams", "--writer", "Alex Rivera"); err != nil {
		t.Fatalf("work add: %v", err)
	}

	statement := filepath.Join(dir, "statement.csv")
	csv := "title,artist,amount\nMidnight Dreams,Alex Rivera,100\nUnknown Song Title,Nobody,25.5\n"
	if err := os.WriteFile(statement, []byte(csv), 0o644); err != nil {
		t.Fatalf("write statement: %v", err)
	}

	out, _, err := runCLI(t, dbPath, "reconcile", statement)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !strings.Contains(out, "Matched:   1 lines ($100.00)") || !strings.Contains(out, "Unmatched: 1 lines ($25.50)") {
		t.Fatalf("unexpected reconcile output: %q", out)
	}

	out, _, err = runCLI(t, dbPath, "reconcile", statement, "--estimate")
	if err != nil {
		t.Fatalf("reconcile --estimate: %v", err)
	}
	if !strings.Contains(out, "Catalog pipeline") {
		t.Fatalf("expected pipeline section, got %q", out)
	}

	if _, _, err := runCLI(t, dbPath, "reconcile", filepath.Join(dir, "missing.csv")); err == nil {
		t.Fatal("expected missing statement to fail")
	}
}

func TestCLIReconcileEstimateHonorsMin(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "cli.sqlite3")

	if _, _, err := runCLI(t, dbPath, "work", "add", "--title", "Midnight Dreams", "--writer", "Alex Rivera"); err != nil {
		t.Fatalf("work add: %v", err)
	}

	statement := filepath.Join(dir, "statement.csv")
	if err := os.WriteFile(statement, []byte("title,artist\nMidnight Dream,Alex Rivera\n"), 0o644); err != nil {
		t.Fatalf("write statement: %v", err)
	}

	tests := []struct {
		name        string
		args        []string
		wantMatched int
	}{
		{"default floor", []string{"--estimate"}, 1},
		{"strict floor", []string{"--estimate", "--min", "0.99"}, 0},
		{"strict floor without estimate", []string{"--min", "0.99"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"reconcile", statement, "--json"}, tt.args...)
			out, _, err := runCLI(t, dbPath, args...)
			if err != nil {
				t.Fatalf("reconcile: %v", err)
			}

			var report royalty.ReconcileReport
			if slices.Contains(tt.args, "--estimate") {
				var est royalty.StatementPipeline
				if err := json.Unmarshal([]byte(out), &est); err != nil {
					t.Fatalf("decode estimate: %v", err)
				}
				if est.Pipeline.SongCount != tt.wantMatched {
					t.Errorf("expected %d songs in pipeline, got %d", tt.wantMatched, est.Pipeline.SongCount)
				}
				report = est.Reconcile
			} else if err := json.Unmarshal([]byte(out), &report); err != nil {
				t.Fatalf("decode report: %v", err)
			}

			if report.Matched != tt.wantMatched {
				t.Errorf("expected %d matched, got %d", tt.wantMatched, report.Matched)
			}
		})
	}
}

func TestCLIConfig(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "cli.sqlite3")

	out, _, err := runCLI(t, dbPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "platform_fee = 0.15") || !strings.Contains(out, "[right_weights]") {
		t.Fatalf("unexpected config output: %q", out)
	}

	good := filepath.Join(dir, "good.toml")
	if err := os.WriteFile(good, []byte("platform_fee = 0.1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out, _, err = runCLI(t, dbPath, "config", "validate", good)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "is valid") {
		t.Fatalf("unexpected validate output: %q", out)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("right_weights:\n  sync: 0.5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := runCLI(t, dbPath, "config", "validate", bad); err == nil {
		t.Fatal("expected invalid config to fail")
	}

	cmd := newRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath, "--pipeline-config", good, "config", "show"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config show with file: %v", err)
	}
	if !strings.Contains(stdout.String(), "platform_fee = 0.1\n") {
		t.Fatalf("expected overridden fee, got %q", stdout.String())
	}
}
