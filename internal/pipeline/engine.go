// Package pipeline runs the per-resume screening pipeline and fans batches out
// over a bounded worker pool.
package pipeline

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/intellihire/internal/augment"
	"github.com/jonathan/intellihire/internal/cache"
	"github.com/jonathan/intellihire/internal/ingestion"
	"github.com/jonathan/intellihire/internal/logger"
	"github.com/jonathan/intellihire/internal/metrics"
	"github.com/jonathan/intellihire/internal/parsing"
	"github.com/jonathan/intellihire/internal/profile"
	"github.com/jonathan/intellihire/internal/ranking"
	"github.com/jonathan/intellihire/internal/skills"
	"github.com/jonathan/intellihire/internal/types"
)

// DefaultAugmenterTimeout bounds a single augmenter call.
const DefaultAugmenterTimeout = 20 * time.Second

// Progress steps.
const (
	StepAnalyzed = "resume_analyzed"
	StepSkipped  = "resume_skipped"
	StepCached   = "resume_cached"
)

// maxLoggedResponse bounds how much unparseable model output is logged.
const maxLoggedResponse = 200

// SkipReasonTooShort marks resumes whose extracted text is unusable.
const SkipReasonTooShort = "insufficient text extracted"

// ProgressEvent represents a progress update during batch execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Index    int    `json:"index"`
	Total    int    `json:"total"`
	Filename string `json:"filename"`
	Message  string `json:"message"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when batch progress occurs. Calls are serialized.
type ProgressCallback func(event ProgressEvent)

// Options configures an Engine. Every field is optional.
type Options struct {
	Augmenter        augment.Augmenter
	Cache            cache.AnalysisCache
	Logger           *zap.Logger
	Metrics          *metrics.Recorder
	Workers          int
	AugmenterTimeout time.Duration
	Now              func() time.Time
	OnProgress       ProgressCallback
}

// ResumeInput is one resume's extracted text.
type ResumeInput struct {
	Filename string
	Text     string
}

// BatchItem is the outcome for one submitted resume. Result is nil when skipped.
type BatchItem struct {
	Index      int                   `json:"index"`
	Filename   string                `json:"filename"`
	Result     *types.AnalysisResult `json:"result,omitempty"`
	Skipped    bool                  `json:"skipped"`
	SkipReason string                `json:"skip_reason,omitempty"`
}

// Engine screens resumes against a job.
type Engine struct {
	augmenter  augment.Augmenter
	cache      cache.AnalysisCache
	log        *zap.Logger
	metrics    *metrics.Recorder
	workers    int
	timeout    time.Duration
	now        func() time.Time
	onProgress ProgressCallback
	progressMu sync.Mutex
}

// NewEngine builds an Engine, filling defaults for unset options.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		augmenter:  opts.Augmenter,
		cache:      opts.Cache,
		log:        opts.Logger,
		metrics:    opts.Metrics,
		workers:    opts.Workers,
		timeout:    opts.AugmenterTimeout,
		now:        opts.Now,
		onProgress: opts.OnProgress,
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.workers <= 0 {
		e.workers = runtime.NumCPU()
	}
	if e.timeout <= 0 {
		e.timeout = DefaultAugmenterTimeout
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// Workers returns the worker pool size.
func (e *Engine) Workers() int { return e.workers }

// AugmenterEnabled reports whether an augmenter is configured.
func (e *Engine) AugmenterEnabled() bool { return e.augmenter != nil }

// AnalyzeResume runs extract, match, augment and score for one resume. It never fails:
// augmenter and cache problems are logged and the algorithmic result is returned.
func (e *Engine) AnalyzeResume(ctx context.Context, job types.Job, in ResumeInput) types.AnalysisResult {
	result, _ := e.analyze(ctx, job, in)
	return result
}

// analyze is AnalyzeResume that also reports a cache hit.
func (e *Engine) analyze(ctx context.Context, job types.Job, in ResumeInput) (types.AnalysisResult, bool) {
	start := time.Now()
	log := e.log.With(zap.String("filename", in.Filename))

	now := e.now()
	key := e.cacheKey(job, in.Text, now.Year())
	if cached, ok := e.lookup(ctx, log, key); ok {
		e.metrics.ResumeAnalyzed(metrics.ModeCached, time.Since(start))
		cached.AnalysisTimestamp = now.UTC()
		return *cached, true
	}

	candidate := profile.ExtractAt(in.Text, now)
	found := skills.Extract(in.Text)
	match := skills.Match(found, job.RequiredSkills)

	aug := e.augment(ctx, log, augment.Request{
		Profile:        candidate,
		Match:          match,
		ResumeText:     in.Text,
		JobDescription: job.Description,
		RequiredSkills: job.RequiredSkills,
	})

	result := ranking.Score(ranking.ScoreInput{
		Profile:          candidate,
		Match:            match,
		TotalSkillsFound: len(found),
		Augmented:        aug,
		Now:              now,
	})

	mode := metrics.ModeAlgorithmic
	if result.AugmenterUsed {
		mode = metrics.ModeAugmented
	}
	e.metrics.ResumeAnalyzed(mode, time.Since(start))
	log.Debug("resume analyzed",
		zap.String("candidate", result.CandidateName),
		zap.Float64("overall_score", result.OverallScore),
		zap.String("mode", mode))

	// Only results of the key's mode are cached. Cancelled calls cache nothing.
	if ctx.Err() == nil && result.AugmenterUsed == e.AugmenterEnabled() {
		e.store(ctx, log, key, result)
	}
	return result, false
}

// AnalyzeBatch screens every resume concurrently and returns one item per input,
// ranked by overall score with skipped resumes last. Ties keep submission order.
// If ctx is cancelled no results are returned.
func (e *Engine) AnalyzeBatch(ctx context.Context, job types.Job, resumes []ResumeInput) ([]BatchItem, error) {
	items := make([]BatchItem, len(resumes))
	if len(resumes) == 0 {
		return items, nil
	}
	e.metrics.BatchSubmitted(len(resumes))
	e.log.Info("batch started",
		zap.String("job", job.Title),
		zap.Int("resumes", len(resumes)),
		zap.Int("workers", e.workers))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, in := range resumes {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			item := BatchItem{Index: i, Filename: in.Filename}

			if !ingestion.Screenable(in.Text) {
				item.Skipped = true
				item.SkipReason = SkipReasonTooShort
				items[i] = item
				e.metrics.ResumeAnalyzed(metrics.ModeSkipped, 0)
				e.emit(ProgressEvent{Step: StepSkipped, Index: i, Total: len(resumes), Filename: in.Filename, Message: SkipReasonTooShort})
				return nil
			}

			result, cached := e.analyze(gCtx, job, in)
			item.Result = &result
			items[i] = item
			step := StepAnalyzed
			if cached {
				step = StepCached
			}
			e.emit(ProgressEvent{
				Step:     step,
				Index:    i,
				Total:    len(resumes),
				Filename: in.Filename,
				Message:  result.CandidateName + ": " + string(result.Recommendation),
				Content:  result.OverallScore,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	SortItems(items)
	return items, nil
}

// SortItems orders analyzed items by overall score descending, then skipped items.
// The sort is stable.
func SortItems(items []BatchItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Result == nil || b.Result == nil {
			return a.Result != nil && b.Result == nil
		}
		return ranking.Outranks(a.Result, b.Result)
	})
}

// Results returns the analyzed results of items ranked by overall score.
// Skipped items are dropped.
func Results(items []BatchItem) []types.AnalysisResult {
	results := make([]types.AnalysisResult, 0, len(items))
	for _, item := range items {
		if item.Result != nil {
			results = append(results, *item.Result)
		}
	}
	ranking.RankResults(results)
	return results
}

type augmentOutcome struct {
	scores *types.AugmentedScores
	err    error
}

// augment calls the augmenter under the configured timeout. Any failure yields nil.
func (e *Engine) augment(ctx context.Context, log *zap.Logger, req augment.Request) *types.AugmentedScores {
	if e.augmenter == nil {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	done := make(chan augmentOutcome, 1)
	go func() {
		scores, err := e.augmenter.Augment(callCtx, req)
		done <- augmentOutcome{scores: scores, err: err}
	}()

	var out augmentOutcome
	select {
	case out = <-done:
	case <-callCtx.Done():
		out.err = callCtx.Err()
	}

	if out.err != nil {
		reason := failureReason(out.err)
		e.metrics.AugmenterFailed(reason)
		fields := []zap.Field{zap.String("reason", reason), zap.Error(out.err)}
		var parseErr *parsing.ParseError
		if errors.As(out.err, &parseErr) && parseErr.Response != "" {
			fields = append(fields, zap.String("response", logger.TruncateForLog(parseErr.Response, maxLoggedResponse)))
		}
		log.Warn("augmenter failed, using algorithmic scoring", fields...)
		return nil
	}
	if out.scores.IsEmpty() {
		e.metrics.AugmenterFailed(metrics.ReasonEmpty)
		log.Warn("augmenter returned nothing usable, using algorithmic scoring")
		return nil
	}
	return out.scores
}

func failureReason(err error) string {
	var parseErr *parsing.ParseError
	var callErr *parsing.APICallError
	switch {
	case errors.As(err, &callErr) && callErr.TimedOut(), errors.Is(err, context.DeadlineExceeded):
		return metrics.ReasonTimeout
	case errors.As(err, &parseErr):
		return metrics.ReasonParse
	default:
		return metrics.ReasonTransport
	}
}

// cacheKey covers everything that changes the result: whether an augmenter is
// in play and the year that anchors candidate classification.
func (e *Engine) cacheKey(job types.Job, text string, year int) string {
	mode := metrics.ModeAlgorithmic
	if e.augmenter != nil {
		mode = metrics.ModeAugmented
	}
	return ingestion.ContentHash(mode, strconv.Itoa(year), text, job.Description, strings.Join(job.RequiredSkills, ","))
}

func (e *Engine) lookup(ctx context.Context, log *zap.Logger, key string) (*types.AnalysisResult, bool) {
	if e.cache == nil {
		return nil, false
	}
	result, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		log.Warn("cache lookup failed", zap.Error(err))
		return nil, false
	}
	e.metrics.CacheLookup(ok)
	return result, ok
}

func (e *Engine) store(ctx context.Context, log *zap.Logger, key string, result types.AnalysisResult) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Set(ctx, key, result); err != nil {
		log.Warn("cache store failed", zap.Error(err))
	}
}

func (e *Engine) emit(event ProgressEvent) {
	if e.onProgress == nil {
		return
	}
	e.progressMu.Lock()
	defer e.progressMu.Unlock()
	e.onProgress(event)
}
