package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/intellihire/internal/export"
	"github.com/jonathan/intellihire/internal/fetch"
	"github.com/jonathan/intellihire/internal/ingestion"
	"github.com/jonathan/intellihire/internal/llm"
	"github.com/jonathan/intellihire/internal/observability"
	"github.com/jonathan/intellihire/internal/pipeline"
	"github.com/jonathan/intellihire/internal/schemas"
	"github.com/jonathan/intellihire/internal/types"
)

var (
	analyzeSkills   string
	analyzeJob      string
	analyzeTitle    string
	analyzeJSON     bool
	analyzeValidate bool
	analyzeNoLLM    bool
	analyzeXLSX     string
	analyzeQuiet    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files or directories...]",
	Short: "Screen local resume files against required skills",
	Long: "Extract text from PDF, DOCX, HTML or text resumes, score each against the required skills " +
		"and print the ranked results. Directories are scanned one level deep.",
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeSkills, "skills", "", "Comma-separated required skills (required)")
	analyzeCmd.Flags().StringVar(&analyzeJob, "job", "", "Job description text, a file containing it, or a posting URL")
	analyzeCmd.Flags().StringVar(&analyzeTitle, "title", "Ad hoc screening", "Job title for reports")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print results as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeValidate, "validate", false, "Validate results against the analysis schema")
	analyzeCmd.Flags().BoolVar(&analyzeNoLLM, "no-llm", false, "Skip the language model and use algorithmic scoring only")
	analyzeCmd.Flags().StringVar(&analyzeXLSX, "xlsx", "", "Also write an Excel report to this path")
	analyzeCmd.Flags().BoolVarP(&analyzeQuiet, "quiet", "q", false, "Suppress progress output")
	_ = analyzeCmd.MarkFlagRequired("skills")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	requiredSkills := types.SplitSkills(analyzeSkills)
	if len(requiredSkills) == 0 {
		return fmt.Errorf("--skills must list at least one skill")
	}
	ctx := context.Background()
	title, description, err := resolveJob(ctx, analyzeJob)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("title") || title == "" {
		title = analyzeTitle
	}
	paths, err := collectResumePaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no resume files found")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var client llm.Client
	if !analyzeNoLLM {
		if client, err = a.llmClient(ctx); err != nil {
			return err
		}
	}

	var progress pipeline.ProgressCallback
	if !analyzeQuiet {
		progress = observability.NewPrinter(cmd.ErrOrStderr()).Progress
	}
	engine := a.engine(ctx, client, progress)

	inputs := make([]pipeline.ResumeInput, 0, len(paths))
	for _, path := range paths {
		text, meta, err := ingestion.IngestFile(path)
		if err != nil {
			return err
		}
		a.log.Debug("resume ingested",
			zap.String("filename", meta.Filename),
			zap.String("format", string(meta.Format)),
			zap.Int("characters", meta.Characters),
			zap.String("hash", meta.Hash))
		inputs = append(inputs, pipeline.ResumeInput{Filename: meta.Filename, Text: text})
	}

	job := types.Job{
		Title:          title,
		Description:    description,
		RequiredSkills: requiredSkills,
		CreatedAt:      time.Now().UTC(),
	}
	items, err := engine.AnalyzeBatch(ctx, job, inputs)
	if err != nil {
		return fmt.Errorf("screening failed: %w", err)
	}

	if analyzeValidate {
		if err := schemas.ValidateAnalysisResults(pipeline.Results(items)); err != nil {
			return fmt.Errorf("result validation failed: %w", err)
		}
	}

	if analyzeXLSX != "" {
		path, err := export.WriteFile(analyzeXLSX, export.Report{
			Job:         job,
			Candidates:  candidatesFromItems(job, items),
			GeneratedAt: time.Now(),
		})
		if err != nil {
			return err
		}
		a.log.Info("report written", zap.String("path", path))
	}

	return printResults(cmd.OutOrStdout(), job, items)
}

func printResults(out io.Writer, job types.Job, items []pipeline.BatchItem) error {
	if analyzeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	p := observability.NewPrinter(out)
	p.PrintJob(job)
	for _, item := range items {
		p.PrintResult(item.Filename, item.Result)
	}
	p.PrintRanking(items)
	return nil
}

// resolveJob turns --job into a description. value may be a posting URL, a
// file path or the description itself. Only a URL yields a title.
func resolveJob(ctx context.Context, value string) (string, string, error) {
	if value == "" {
		return "", "", nil
	}
	if fetch.IsURL(value) {
		posting, err := fetch.JobPosting(ctx, strings.TrimSpace(value), nil)
		if err != nil {
			return "", "", err
		}
		return posting.Title, posting.Description, nil
	}

	info, err := os.Stat(value)
	if err != nil || info.IsDir() {
		return "", value, nil
	}
	data, err := os.ReadFile(value)
	if err != nil {
		return "", "", fmt.Errorf("failed to read job description: %w", err)
	}
	return "", strings.TrimSpace(string(data)), nil
}

// collectResumePaths expands directories to their supported files, sorted by name.
func collectResumePaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", arg, err)
		}
		var found []string
		for _, entry := range entries {
			if entry.IsDir() || ingestion.DetectFormat(entry.Name()) == ingestion.FormatUnknown {
				continue
			}
			found = append(found, filepath.Join(arg, entry.Name()))
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	return paths, nil
}

func candidatesFromItems(job types.Job, items []pipeline.BatchItem) []types.Candidate {
	candidates := make([]types.Candidate, 0, len(items))
	for _, item := range items {
		if item.Result == nil {
			continue
		}
		candidates = append(candidates, types.Candidate{
			Filename:       item.Filename,
			AnalysisResult: *item.Result,
			RequiredSkills: job.RequiredSkills,
			CreatedAt:      job.CreatedAt,
		})
	}
	return candidates
}
