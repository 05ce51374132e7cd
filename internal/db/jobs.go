package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/intellihire/internal/types"
)

// -----------------------------------------------------------------------------
// Job Methods
// -----------------------------------------------------------------------------

const jobColumns = `id, title, description, required_skills, experience_required, created_at`

// CreateJob inserts a job and returns it with its generated ID and timestamp.
func (db *DB) CreateJob(ctx context.Context, input JobCreateInput) (*types.Job, error) {
	skills := input.RequiredSkills
	if skills == nil {
		skills = []string{}
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, description, required_skills, experience_required)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+jobColumns,
		input.Title, input.Description, skills, input.ExperienceRequired,
	)
	job, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// GetJob retrieves a job by ID. A missing job is (nil, nil).
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	row := db.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// ListJobs returns all jobs, newest first.
func (db *DB) ListJobs(ctx context.Context) ([]types.Job, error) {
	rows, err := db.pool.Query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []types.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}

func scanJob(row rowScanner) (*types.Job, error) {
	var j types.Job
	if err := row.Scan(&j.ID, &j.Title, &j.Description, &j.RequiredSkills, &j.ExperienceRequired, &j.CreatedAt); err != nil {
		return nil, err
	}
	if j.RequiredSkills == nil {
		j.RequiredSkills = []string{}
	}
	return &j, nil
}
