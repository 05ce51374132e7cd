package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/intellihire/internal/export"
)

var (
	exportJobID string
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the Excel report for a stored job",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportJobID, "job-id", "", "Job ID (required)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output path (default derived from the job title)")
	_ = exportCmd.MarkFlagRequired("job-id")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	jobID, err := uuid.Parse(exportJobID)
	if err != nil {
		return fmt.Errorf("invalid --job-id: %w", err)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
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

	out := exportOut
	if out == "" {
		out = export.Filename(*job)
	}
	path, err := export.WriteFile(out, export.Report{Job: *job, Candidates: candidates, GeneratedAt: time.Now()})
	if err != nil {
		return err
	}
	a.log.Info("report written", zap.String("path", path), zap.Int("candidates", len(candidates)))
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
