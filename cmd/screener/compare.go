package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/intellihire/internal/augment"
)

var compareJobID string

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a stored job's top candidates with the language model",
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareJobID, "job-id", "", "Job ID (required)")
	_ = compareCmd.MarkFlagRequired("job-id")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	jobID, err := uuid.Parse(compareJobID)
	if err != nil {
		return fmt.Errorf("invalid --job-id: %w", err)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	client, err := a.llmClient(ctx)
	if err != nil {
		return err
	}
	if client == nil {
		return fmt.Errorf("comparison needs a language model (set GEMINI_API_KEY or llm.project)")
	}

	database, err := a.database(ctx)
	if err != nil {
		return err
	}
	job, err := database.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("job not found: %s", jobID)
	}
	candidates, err := database.ListCandidatesByJob(ctx, jobID)
	if err != nil {
		return err
	}

	comparison, err := augment.NewComparer(client).Compare(ctx, *job, candidates)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), comparison)
	return nil
}
