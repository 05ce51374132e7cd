//go:build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/intellihire/internal/types"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx))
	return db
}

func cleanupJob(t *testing.T, db *DB, id uuid.UUID) {
	t.Helper()
	_, _ = db.pool.Exec(context.Background(), "DELETE FROM jobs WHERE id = $1", id)
}

func TestIntegration_JobsAndCandidates(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	require.NoError(t, db.Migrate(ctx), "migrate is idempotent")

	job, err := db.CreateJob(ctx, JobCreateInput{
		Title:          "Integration Backend Engineer",
		Description:    "Python services",
		RequiredSkills: []string{"python", "django"},
	})
	require.NoError(t, err)
	defer cleanupJob(t, db, job.ID)

	t.Run("get job", func(t *testing.T) {
		got, err := db.GetJob(ctx, job.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, []string{"python", "django"}, got.RequiredSkills)

		missing, err := db.GetJob(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("list jobs includes new job first", func(t *testing.T) {
		jobs, err := db.ListJobs(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, jobs)
		assert.Equal(t, job.ID, jobs[0].ID)
	})

	t.Run("save and list candidates", func(t *testing.T) {
		email := "asha@example.com"
		saved, err := db.SaveCandidates(ctx, job.ID, []CandidateInput{
			{Filename: "asha.pdf", Result: types.AnalysisResult{CandidateName: "Asha Rao", Email: &email, OverallScore: 80, IsFresher: true}},
			{Filename: "tie-a.pdf", Result: types.AnalysisResult{CandidateName: "Tie A", OverallScore: 50}},
			{Filename: "tie-b.pdf", Result: types.AnalysisResult{CandidateName: "Tie B", OverallScore: 50}},
		})
		require.NoError(t, err)
		require.Len(t, saved, 3)

		list, err := db.ListCandidatesByJob(ctx, job.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{"asha.pdf", "tie-a.pdf", "tie-b.pdf"},
			[]string{list[0].Filename, list[1].Filename, list[2].Filename})
		assert.Equal(t, []string{"python", "django"}, list[0].RequiredSkills)

		one, err := db.GetCandidate(ctx, saved[0].ID)
		require.NoError(t, err)
		require.NotNil(t, one)
		assert.Equal(t, "Asha Rao", one.CandidateName)
		assert.Equal(t, email, *one.Email)
	})

	t.Run("unknown job rolls back", func(t *testing.T) {
		_, err := db.SaveCandidates(ctx, uuid.New(), []CandidateInput{{Filename: "x.pdf"}})
		assert.ErrorIs(t, err, ErrJobNotFound)
	})

	t.Run("stats", func(t *testing.T) {
		stats, err := db.Stats(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, stats.TotalJobs, 1)
		assert.GreaterOrEqual(t, stats.TotalCandidates, 3)
		assert.GreaterOrEqual(t, stats.Freshers, 1)
		assert.Equal(t, stats.TotalCandidates, stats.Freshers+stats.Experienced)
	})
}
