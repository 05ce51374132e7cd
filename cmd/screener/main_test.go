package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/intellihire/internal/config"
	"github.com/jonathan/intellihire/internal/pipeline"
	"github.com/jonathan/intellihire/internal/server"
)

const sampleResume = `Asha Rao
asha.rao@example.com | +1 415 555 0199

EDUCATION
B.Tech in Computer Science, 2020 - 2024

SKILLS
Python, Django, Docker, SQL, Git, AWS

PROJECTS
Built a REST service for campus placements used by 2000 students.
`

// execute runs the root command in-process with flags reset to their defaults.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("INTELLIHIRE_LLM_ENABLED", "false")
	t.Setenv("INTELLIHIRE_LOG_LEVEL", "error")

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "asha.txt", sampleResume)
	writeFile(t, dir, "blank.txt", "n/a")
	writeFile(t, dir, "notes.csv", "ignored")

	stdout, _, err := execute(t, "analyze", "--skills", "Python, SQL, Kubernetes", "--json", "--quiet", "--validate", dir)
	require.NoError(t, err)

	var items []pipeline.BatchItem
	require.NoError(t, json.Unmarshal([]byte(stdout), &items))
	require.Len(t, items, 2)
	require.NotNil(t, items[0].Result)
	assert.Equal(t, "asha.txt", items[0].Filename)
	assert.Equal(t, "Asha Rao", items[0].Result.CandidateName)
	assert.Equal(t, []string{"Python", "SQL"}, items[0].Result.MatchedSkills)
	assert.False(t, items[0].Result.AugmenterUsed)
	assert.True(t, items[1].Skipped)
}

func TestAnalyzeCommand_BoxOutputAndReport(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "asha.txt", sampleResume)
	jobFile := writeFile(t, dir, "job.txt", "Build Python services backed by SQL.")
	report := filepath.Join(dir, "report")

	stdout, stderr, err := execute(t, "analyze", "--skills", "python,sql", "--job", jobFile, "--xlsx", report, resume)
	require.NoError(t, err)

	assert.Contains(t, stdout, "CANDIDATE ANALYSIS")
	assert.Contains(t, stdout, "RANKED CANDIDATES")
	assert.Contains(t, stderr, "[1/1] asha.txt")
	assert.FileExists(t, report+".xlsx")
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "asha.txt", sampleResume)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing skills flag", []string{"analyze", resume}, "required flag"},
		{"blank skills", []string{"analyze", "--skills", " , ", resume}, "at least one skill"},
		{"missing file", []string{"analyze", "--skills", "go", filepath.Join(dir, "nope.pdf")}, "file not found"},
		{"empty directory", []string{"analyze", "--skills", "go", t.TempDir()}, "no resume files found"},
		{"no args", []string{"analyze", "--skills", "go"}, "requires at least 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMigrateCommand_Print(t *testing.T) {
	stdout, _, err := execute(t, "migrate", "--print")
	require.NoError(t, err)
	assert.Contains(t, stdout, "CREATE TABLE IF NOT EXISTS jobs")
	assert.Contains(t, stdout, "candidates")
}

func TestMigrateCommand_RequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("INTELLIHIRE_DATABASE_URL", "")
	_, _, err := execute(t, "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database url is required")
}

func TestTokenCommand(t *testing.T) {
	secret := "cli-test-secret-with-enough-length"
	t.Setenv("JWT_SECRET", secret)

	stdout, stderr, err := execute(t, "token", "--subject", "recruiter@example.com")
	require.NoError(t, err)
	assert.Contains(t, stderr, "expires")

	claims, err := server.NewJWTService(&config.JWTConfig{Secret: secret, ExpirationHours: 1}).
		ValidateToken(strings.TrimSpace(stdout))
	require.NoError(t, err)
	assert.Equal(t, "recruiter@example.com", claims.Subject)
	assert.Equal(t, "write", claims.Scope)
}

func TestTokenCommand_NoSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("INTELLIHIRE_JWT_SECRET", "")
	_, _, err := execute(t, "token", "--subject", "ops")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret cannot be empty")
}

func TestExportAndCompare_ValidateJobID(t *testing.T) {
	_, _, err := execute(t, "export", "--job-id", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --job-id")

	_, _, err = execute(t, "compare", "--job-id", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --job-id")
}

func TestCompare_RequiresModel(t *testing.T) {
	_, _, err := execute(t, "compare", "--job-id", "00000000-0000-0000-0000-000000000001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a language model")
}

func TestResolveJob(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "job.txt", "  Python backend role \n")
	ctx := context.Background()

	title, got, err := resolveJob(ctx, path)
	require.NoError(t, err)
	assert.Empty(t, title)
	assert.Equal(t, "Python backend role", got)

	_, got, err = resolveJob(ctx, "Inline description")
	require.NoError(t, err)
	assert.Equal(t, "Inline description", got)

	_, got, err = resolveJob(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got, "directories are treated as text")
}

func TestResolveJob_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><h1>Data Engineer</h1><main><p>Spark and SQL pipelines</p></main></body></html>`))
	}))
	defer srv.Close()

	title, description, err := resolveJob(context.Background(), srv.URL+"/jobs/7")
	require.NoError(t, err)
	assert.Equal(t, "Data Engineer", title)
	assert.Equal(t, "Spark and SQL pipelines", description)
}

func TestCollectResumePaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.pdf", "x")
	writeFile(t, dir, "a.docx", "x")
	writeFile(t, dir, "c.exe", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o700))
	single := writeFile(t, t.TempDir(), "z.txt", "x")

	paths, err := collectResumePaths([]string{single, dir})
	require.NoError(t, err)
	assert.Equal(t, []string{single, filepath.Join(dir, "a.docx"), filepath.Join(dir, "b.pdf")}, paths)
}
