package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/intellihire/internal/config"
	"github.com/jonathan/intellihire/internal/db"
	"github.com/jonathan/intellihire/internal/metrics"
	"github.com/jonathan/intellihire/internal/pipeline"
	"github.com/jonathan/intellihire/internal/types"
)

const analystResume = `Asha Rao
asha.rao@example.com | +1 415 555 0199

EDUCATION
B.Tech in Computer Science, 2020 - 2024

SKILLS
Python, Django, Docker, SQL, Git, AWS

PROJECTS
Built a REST service for campus placements used by 2000 students.
`

// fakeStore implements Store in memory.
type fakeStore struct {
	mu         sync.Mutex
	jobs       map[uuid.UUID]*types.Job
	candidates map[uuid.UUID][]types.Candidate
	saveErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		jobs:       map[uuid.UUID]*types.Job{},
		candidates: map[uuid.UUID][]types.Candidate{},
	}
}

func (f *fakeStore) CreateJob(_ context.Context, in db.JobCreateInput) (*types.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job := &types.Job{
		ID:                 uuid.New(),
		Title:              in.Title,
		Description:        in.Description,
		RequiredSkills:     in.RequiredSkills,
		ExperienceRequired: in.ExperienceRequired,
		CreatedAt:          time.Now(),
	}
	f.jobs[job.ID] = job
	return job, nil
}

func (f *fakeStore) GetJob(_ context.Context, id uuid.UUID) (*types.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobs[id], nil
}

func (f *fakeStore) ListJobs(context.Context) ([]types.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	jobs := []types.Job{}
	for _, j := range f.jobs {
		jobs = append(jobs, *j)
	}
	return jobs, nil
}

func (f *fakeStore) SaveCandidates(_ context.Context, jobID uuid.UUID, inputs []db.CandidateInput) ([]types.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	job, ok := f.jobs[jobID]
	if !ok {
		return nil, db.ErrJobNotFound
	}
	saved := make([]types.Candidate, 0, len(inputs))
	for _, in := range inputs {
		saved = append(saved, types.Candidate{
			ID:             uuid.New(),
			JobID:          jobID,
			Filename:       in.Filename,
			AnalysisResult: in.Result,
			RequiredSkills: job.RequiredSkills,
			CreatedAt:      time.Now(),
		})
	}
	f.candidates[jobID] = append(f.candidates[jobID], saved...)
	return saved, nil
}

func (f *fakeStore) ListCandidatesByJob(_ context.Context, jobID uuid.UUID) ([]types.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]types.Candidate(nil), f.candidates[jobID]...), nil
}

func (f *fakeStore) GetCandidate(_ context.Context, id uuid.UUID) (*types.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, list := range f.candidates {
		for i := range list {
			if list[i].ID == id {
				c := list[i]
				return &c, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeStore) Stats(context.Context) (*types.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &types.Stats{TotalJobs: len(f.jobs)}
	for _, list := range f.candidates {
		for _, c := range list {
			s.TotalCandidates++
			if c.IsFresher {
				s.Freshers++
			} else if c.ExperienceYears > 0 {
				s.Experienced++
			}
		}
	}
	return s, nil
}

type fakeComparer struct {
	got []types.Candidate
}

func (c *fakeComparer) Compare(_ context.Context, _ types.Job, candidates []types.Candidate) (string, error) {
	c.got = candidates
	return "Asha Rao leads on Python depth.", nil
}

func newTestServer(t *testing.T, deps Deps) (*Server, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	if deps.Store == nil {
		deps.Store = store
	}
	if deps.Engine == nil {
		deps.Engine = pipeline.NewEngine(pipeline.Options{Workers: 2})
	}
	s, err := New(Config{Addr: ":0"}, deps)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s, store
}

func seedJob(t *testing.T, store *fakeStore) *types.Job {
	t.Helper()
	job, err := store.CreateJob(context.Background(), db.JobCreateInput{
		Title:          "Backend Engineer",
		Description:    "Build Python services",
		RequiredSkills: []string{"Python", "SQL", "Kubernetes"},
	})
	require.NoError(t, err)
	return job
}

func do(t *testing.T, s *Server, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	var body map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func uploadRequest(t *testing.T, jobID string, files map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if jobID != "" {
		require.NoError(t, mw.WriteField("job_id", jobID))
	}
	for name, content := range files {
		part, err := mw.CreateFormFile("resumes", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestNew_RequiresDeps(t *testing.T) {
	_, err := New(Config{}, Deps{Engine: pipeline.NewEngine(pipeline.Options{})})
	assert.Error(t, err)
	_, err = New(Config{}, Deps{Store: newFakeStore()})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, Deps{})
	rec, body := do(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t, Deps{})
	rec, _ := do(t, s, httptest.NewRequest(http.MethodOptions, "/api/jobs", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCreateAndGetJob(t *testing.T) {
	s, _ := newTestServer(t, Deps{})

	payload := `{"title":"Data Analyst","description":"SQL reporting","required_skills":"SQL, Excel ,, Tableau"}`
	rec, body := do(t, s, httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(payload)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, true, body["success"])
	job := body["job"].(map[string]any)
	assert.Equal(t, []any{"SQL", "Excel", "Tableau"}, job["required_skills"])

	rec, body = do(t, s, httptest.NewRequest(http.MethodGet, "/api/jobs/"+job["id"].(string), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Data Analyst", body["job"].(map[string]any)["title"])

	rec, body = do(t, s, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["jobs"], 1)
}

func TestCreateJob_Validation(t *testing.T) {
	s, _ := newTestServer(t, Deps{})

	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{"invalid json", `{"title":`, "invalid JSON body"},
		{"missing title", `{"description":"d","required_skills":"go"}`, "title - is required"},
		{"blank skills", `{"title":"t","description":"d","required_skills":" , "}`, "required_skills - must list at least one skill"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(t, s, httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(tt.payload)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.Contains(t, body["error"], tt.wantErr)
		})
	}
}

func TestGetJob_NotFoundAndBadID(t *testing.T) {
	s, _ := newTestServer(t, Deps{})

	rec, body := do(t, s, httptest.NewRequest(http.MethodGet, "/api/jobs/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, body["error"], "job not found")

	rec, _ = do(t, s, httptest.NewRequest(http.MethodGet, "/api/jobs/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze_ScreensAndPersists(t *testing.T) {
	s, store := newTestServer(t, Deps{})
	job := seedJob(t, store)

	req := uploadRequest(t, job.ID.String(), map[string]string{
		"asha.txt":  analystResume,
		"short.txt": "too short",
		"photo.png": "binary",
	})
	rec, body := do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 1, body["total_processed"])
	candidates := body["candidates"].([]any)
	require.Len(t, candidates, 1)
	c := candidates[0].(map[string]any)
	assert.Equal(t, "asha.txt", c["filename"])
	assert.Equal(t, "Asha Rao", c["candidate_name"])
	assert.Equal(t, []any{"Python", "SQL", "Kubernetes"}, c["required_skills"])
	assert.NotEmpty(t, c["match_details"])
	assert.NotEmpty(t, c["reasoning"])
	assert.NotEmpty(t, c["detailed_analysis"])
	assert.Len(t, body["skipped"], 2)

	stored, err := store.ListCandidatesByJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestAnalyze_BadRequests(t *testing.T) {
	s, store := newTestServer(t, Deps{})
	job := seedJob(t, store)

	rec, body := do(t, s, uploadRequest(t, "", map[string]string{"a.txt": analystResume}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "Missing job_id or resume files")

	rec, _ = do(t, s, uploadRequest(t, job.ID.String(), nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, s, uploadRequest(t, uuid.NewString(), map[string]string{"a.txt": analystResume}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyze_UploadTooLarge(t *testing.T) {
	store := newFakeStore()
	job := seedJob(t, store)
	s, err := New(Config{MaxUploadBytes: 256}, Deps{Store: store, Engine: pipeline.NewEngine(pipeline.Options{})})
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)

	rec, _ := do(t, s, uploadRequest(t, job.ID.String(), map[string]string{"big.txt": strings.Repeat(analystResume, 10)}))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestAnalyze_StoreFailureHidden(t *testing.T) {
	s, store := newTestServer(t, Deps{})
	job := seedJob(t, store)
	store.saveErr = errors.New("connection reset by peer")

	rec, body := do(t, s, uploadRequest(t, job.ID.String(), map[string]string{"asha.txt": analystResume}))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", body["error"])
}

func TestCandidatesAndStats(t *testing.T) {
	s, store := newTestServer(t, Deps{})
	job := seedJob(t, store)
	saved, err := store.SaveCandidates(context.Background(), job.ID, []db.CandidateInput{
		{Filename: "a.pdf", Result: types.AnalysisResult{CandidateName: "Asha Rao", IsFresher: true, OverallScore: 78}},
		{Filename: "b.pdf", Result: types.AnalysisResult{CandidateName: "Maria Lopez", ExperienceYears: 5, OverallScore: 61.3}},
	})
	require.NoError(t, err)

	rec, body := do(t, s, httptest.NewRequest(http.MethodGet, "/api/candidates/"+job.ID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["candidates"], 2)

	rec, body = do(t, s, httptest.NewRequest(http.MethodGet, "/api/candidate/"+saved[1].ID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Maria Lopez", body["candidate"].(map[string]any)["candidate_name"])

	rec, _ = do(t, s, httptest.NewRequest(http.MethodGet, "/api/candidate/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = do(t, s, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	stats := body["stats"].(map[string]any)
	assert.EqualValues(t, 1, stats["total_jobs"])
	assert.EqualValues(t, 2, stats["total_candidates"])
	assert.EqualValues(t, 1, stats["freshers"])
	assert.EqualValues(t, 1, stats["experienced"])
}

func TestExport(t *testing.T) {
	s, store := newTestServer(t, Deps{})
	job := seedJob(t, store)
	_, err := store.SaveCandidates(context.Background(), job.ID, []db.CandidateInput{
		{Filename: "a.pdf", Result: types.AnalysisResult{CandidateName: "Asha Rao", OverallScore: 78}},
	})
	require.NoError(t, err)

	rec, _ := do(t, s, httptest.NewRequest(http.MethodGet, "/api/candidates/"+job.ID.String()+"/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")), "xlsx is a zip archive")

	rec, _ = do(t, s, httptest.NewRequest(http.MethodGet, "/api/candidates/"+uuid.NewString()+"/export", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompare(t *testing.T) {
	s, store := newTestServer(t, Deps{})
	job := seedJob(t, store)

	rec, _ := do(t, s, httptest.NewRequest(http.MethodPost, "/api/jobs/"+job.ID.String()+"/compare", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	comparer := &fakeComparer{}
	s, store = newTestServer(t, Deps{Comparer: comparer})
	job = seedJob(t, store)
	_, err := store.SaveCandidates(context.Background(), job.ID, []db.CandidateInput{
		{Filename: "a.pdf", Result: types.AnalysisResult{CandidateName: "Asha Rao"}},
	})
	require.NoError(t, err)

	rec, body := do(t, s, httptest.NewRequest(http.MethodPost, "/api/jobs/"+job.ID.String()+"/compare", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Asha Rao leads on Python depth.", body["comparison"])
	assert.Len(t, comparer.got, 1)
}

func TestAuth_GuardsWriteRoutes(t *testing.T) {
	jwtService := NewJWTService(&config.JWTConfig{Secret: "test-secret-key-for-jwt-signing", ExpirationHours: 1})
	s, _ := newTestServer(t, Deps{JWT: jwtService})

	payload := `{"title":"t","description":"d","required_skills":"go"}`
	rec, body := do(t, s, httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(payload)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, body["success"])

	token, _, err := jwtService.GenerateToken("recruiter", "write")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+token)
	rec, _ = do(t, s, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = do(t, s, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	assert.Equal(t, http.StatusOK, rec.Code, "reads stay open")
}

func TestRateLimit(t *testing.T) {
	store := newFakeStore()
	s, err := New(Config{RateLimit: true}, Deps{Store: store, Engine: pipeline.NewEngine(pipeline.Options{})})
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	job := seedJob(t, store)

	var last *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		last, _ = do(t, s, uploadRequest(t, job.ID.String(), map[string]string{"a.txt": "short"}))
	}
	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
}

func TestMetricsRoute(t *testing.T) {
	rec := metrics.New()
	s, _ := newTestServer(t, Deps{Metrics: rec})

	res, _ := do(t, s, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, res.Code)

	res, _ = do(t, s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `intellihire_http_requests_total{code="200",route="GET /api/stats"} 1`)
}

func TestStart_ShutsDownOnCancel(t *testing.T) {
	s, _ := newTestServer(t, Deps{})
	s.httpServer.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
