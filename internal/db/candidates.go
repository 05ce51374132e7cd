package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/intellihire/internal/types"
)

// -----------------------------------------------------------------------------
// Candidate Methods
// -----------------------------------------------------------------------------

const candidateSelect = `SELECT c.id, c.job_id, c.filename, c.analysis, c.created_at, j.required_skills
	 FROM candidates c JOIN jobs j ON j.id = c.job_id`

// SaveCandidates stores a ranked batch for a job in one transaction. Either every
// candidate is stored or none is. Position records the batch order for tie-breaks.
func (db *DB) SaveCandidates(ctx context.Context, jobID uuid.UUID, inputs []CandidateInput) ([]types.Candidate, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var requiredSkills []string
	if err := tx.QueryRow(ctx, `SELECT required_skills FROM jobs WHERE id = $1`, jobID).Scan(&requiredSkills); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("job %s: %w", jobID, ErrJobNotFound)
		}
		return nil, fmt.Errorf("failed to load job: %w", err)
	}

	saved := make([]types.Candidate, 0, len(inputs))
	for i, in := range inputs {
		analysis, err := json.Marshal(in.Result)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal analysis for %s: %w", in.Filename, err)
		}

		c := types.Candidate{JobID: jobID, Filename: in.Filename, AnalysisResult: in.Result, RequiredSkills: requiredSkills}
		err = tx.QueryRow(ctx,
			`INSERT INTO candidates (job_id, filename, candidate_name, email, phone, candidate_type,
			                         is_fresher, overall_score, recommendation, position, analysis)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 RETURNING id, created_at`,
			jobID, in.Filename, in.Result.CandidateName, in.Result.Email, in.Result.Phone,
			in.Result.CandidateType, in.Result.IsFresher, in.Result.OverallScore,
			string(in.Result.Recommendation), i, analysis,
		).Scan(&c.ID, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert candidate %s: %w", in.Filename, err)
		}
		saved = append(saved, c)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit candidates: %w", err)
	}
	return saved, nil
}

// ListCandidatesByJob returns a job's candidates by overall score, highest first.
func (db *DB) ListCandidatesByJob(ctx context.Context, jobID uuid.UUID) ([]types.Candidate, error) {
	rows, err := db.pool.Query(ctx,
		candidateSelect+` WHERE c.job_id = $1 ORDER BY c.overall_score DESC, c.created_at, c.position`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := []types.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}
	return candidates, nil
}

// GetCandidate retrieves one candidate. A missing candidate is (nil, nil).
func (db *DB) GetCandidate(ctx context.Context, id uuid.UUID) (*types.Candidate, error) {
	c, err := scanCandidate(db.pool.QueryRow(ctx, candidateSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return c, nil
}

// Stats counts stored jobs and candidates.
func (db *DB) Stats(ctx context.Context) (*types.Stats, error) {
	var s types.Stats
	err := db.pool.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM jobs),
		        COUNT(*),
		        COUNT(*) FILTER (WHERE is_fresher),
		        COUNT(*) FILTER (WHERE NOT is_fresher)
		 FROM candidates`,
	).Scan(&s.TotalJobs, &s.TotalCandidates, &s.Freshers, &s.Experienced)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return &s, nil
}

func scanCandidate(row rowScanner) (*types.Candidate, error) {
	var (
		c        types.Candidate
		analysis []byte
		created  time.Time
	)
	if err := row.Scan(&c.ID, &c.JobID, &c.Filename, &analysis, &created, &c.RequiredSkills); err != nil {
		return nil, err
	}
	if err := decodeAnalysis(analysis, &c.AnalysisResult); err != nil {
		return nil, err
	}
	c.CreatedAt = created
	return &c, nil
}

func decodeAnalysis(data []byte, out *types.AnalysisResult) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode analysis: %w", err)
	}
	return nil
}
