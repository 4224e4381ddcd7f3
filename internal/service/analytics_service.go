// internal/service/analytics_service.go
package service

import (
	"cmp"
	"context"
	"encoding/json"
	"slices"
	"strconv"
	"strings"
	"time"

	"drumgen_testbench/internal/middleware"
	"drumgen_testbench/internal/model"
	"drumgen_testbench/internal/repository"
	"drumgen_testbench/internal/scoring"

	"gorm.io/gorm"
)

const (
	NoteSourceResults  = "test_results"
	NoteSourceFailures = "llm_failures"

	exportDecimals = 2
)

// AnalyticsService aggregates test results. Every call scans the joined
// result rows afresh, so the dashboard always reflects the latest submission.
type AnalyticsService interface {
	Dashboard(ctx context.Context, drumType, modelVersion string) (*model.DashboardSummary, error)
	Export(ctx context.Context) (*model.ExportDocument, error)
	CollectNotes(ctx context.Context) ([]model.NoteRecord, error)
}

type analyticsService struct {
	resultRepo  repository.ResultRepository
	failureRepo repository.LLMFailureRepository
	db          *gorm.DB
	now         func() time.Time
}

func NewAnalyticsService(db *gorm.DB, resultRepo repository.ResultRepository, failureRepo repository.LLMFailureRepository) AnalyticsService {
	return &analyticsService{
		resultRepo:  resultRepo,
		failureRepo: failureRepo,
		db:          db,
		now:         time.Now,
	}
}

// mean is a running average with its own denominator.
type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.n++
}

func (m mean) value() (float64, bool) {
	if m.n == 0 {
		return 0, false
	}
	return m.sum / float64(m.n), true
}

func (m mean) orZero() float64 {
	v, _ := m.value()
	return v
}

// triple holds the three averages every rollup reports.
type triple struct {
	gen, audio, llm mean
}

func (t *triple) add(row model.ResultRow) {
	if g, ok := effectiveGenerationScore(row); ok {
		t.gen.add(g)
	}
	if row.AudioQualityScore != nil {
		t.audio.add(*row.AudioQualityScore)
	}
	if row.LLMAccuracyScore != nil {
		t.llm.add(*row.LLMAccuracyScore)
	}
}

// effectiveGenerationScore is the stored score, or the current formula for
// legacy rows that predate the captured value. Without an audio score there
// is nothing to compute and the row has no generation score at all.
func effectiveGenerationScore(row model.ResultRow) (float64, bool) {
	if row.GenerationScore != nil {
		return *row.GenerationScore, true
	}
	if row.AudioQualityScore != nil {
		return scoring.GenerationScore(row.Difficulty, *row.AudioQualityScore), true
	}
	return 0, false
}

func versionLabel(row model.ResultRow) string {
	if row.ModelVersion == nil || *row.ModelVersion == "" {
		return model.UnknownLabel
	}
	return *row.ModelVersion
}

func drumLabel(row model.ResultRow) string {
	if row.DrumType == nil || *row.DrumType == "" {
		return model.UnknownLabel
	}
	return *row.DrumType
}

func (s *analyticsService) loadRows(ctx context.Context, drumType, modelVersion string) ([]model.ResultRow, error) {
	return s.resultRepo.FindRows(ctx, s.db, drumType, modelVersion)
}

func (s *analyticsService) Dashboard(ctx context.Context, drumType, modelVersion string) (*model.DashboardSummary, error) {
	logger := middleware.GetLogger(ctx)

	rows, err := s.loadRows(ctx, drumType, modelVersion)
	if err != nil {
		logger.Error("Failed to load rows for dashboard", "error", err)
		return nil, model.NewAppError("DASHBOARD_FAILED", "Dashboard failed: "+err.Error(), "", model.ErrInternalServer)
	}
	return buildDashboard(rows), nil
}

func buildDashboard(rows []model.ResultRow) *model.DashboardSummary {
	summary := &model.DashboardSummary{
		TotalTests:             len(rows),
		ByVersion:              []model.VersionSummary{},
		DifficultyDistribution: []model.DifficultyBucket{},
		DrumTypeDistribution:   []model.DrumTypeBucket{},
	}
	if len(rows) == 0 {
		return summary
	}

	var overall triple
	versions := map[string]*triple{}
	versionCounts := map[string]int{}

	difficulties := make([]model.DifficultyBucket, model.MaxDifficulty)
	for i := range difficulties {
		difficulties[i] = model.DifficultyBucket{Difficulty: i + 1, ScoreDistribution: model.NewScoreHistogram()}
	}

	type drumGroup struct {
		key       string
		variants  map[string]int
		total     int
		gen       mean
		histogram model.ScoreHistogram
	}
	drums := map[string]*drumGroup{}

	for _, row := range rows {
		overall.add(row)

		v := versionLabel(row)
		if versions[v] == nil {
			versions[v] = &triple{}
		}
		versions[v].add(row)
		versionCounts[v]++

		bucket := &difficulties[scoring.ClampBucket(float64(row.Difficulty))-1]
		bucket.TotalTests++
		if row.AudioQualityScore != nil {
			bucket.ScoreDistribution[scoring.ClampBucket(*row.AudioQualityScore)]++
		}

		key := scoring.DrumTypeKey(row.DrumType)
		if key == "" {
			continue
		}
		g := drums[key]
		if g == nil {
			g = &drumGroup{key: key, variants: map[string]int{}, histogram: model.NewScoreHistogram()}
			drums[key] = g
		}
		g.variants[*row.DrumType]++
		g.total++
		if row.AudioQualityScore != nil {
			g.histogram[scoring.ClampBucket(*row.AudioQualityScore)]++
		}
		if gen, ok := effectiveGenerationScore(row); ok {
			g.gen.add(gen)
		}
	}

	summary.OverallGenerationScore = scoring.CeilInt(overall.gen.orZero())
	summary.AvgAudioQuality = scoring.CeilTenth(overall.audio.orZero())
	summary.AvgLLMAccuracy = scoring.CeilTenth(overall.llm.orZero())

	for v, t := range versions {
		summary.ByVersion = append(summary.ByVersion, model.VersionSummary{
			Version:         v,
			Count:           versionCounts[v],
			GenerationScore: scoring.CeilInt(t.gen.orZero()),
			AvgAudio:        scoring.CeilTenth(t.audio.orZero()),
			AvgLLM:          scoring.CeilTenth(t.llm.orZero()),
		})
	}
	slices.SortFunc(summary.ByVersion, func(a, b model.VersionSummary) int {
		return cmp.Compare(a.Version, b.Version)
	})

	summary.DifficultyDistribution = difficulties

	for _, g := range drums {
		summary.DrumTypeDistribution = append(summary.DrumTypeDistribution, model.DrumTypeBucket{
			DrumType:          displayLabel(g.variants, g.key),
			DrumTypeKey:       g.key,
			TotalTests:        g.total,
			GenerationScore:   scoring.CeilInt(g.gen.orZero()),
			ScoreDistribution: g.histogram,
		})
	}
	slices.SortFunc(summary.DrumTypeDistribution, func(a, b model.DrumTypeBucket) int {
		if c := cmp.Compare(a.DrumType, b.DrumType); c != 0 {
			return c
		}
		return cmp.Compare(a.DrumTypeKey, b.DrumTypeKey)
	})

	return summary
}

// displayLabel picks the most frequent raw variant of a drum-type group.
// Ties go to the lexicographically smallest variant.
func displayLabel(variants map[string]int, fallback string) string {
	best, bestCount := "", 0
	for v, c := range variants {
		if c > bestCount || (c == bestCount && v < best) {
			best, bestCount = v, c
		}
	}
	if best == "" {
		return fallback
	}
	return best
}

// exportRollup accumulates one ExportGroup.
type exportRollup struct {
	group  *model.ExportGroup
	scores triple
}

type rollupSet map[string]*exportRollup

func (rs rollupSet) get(key string, init func() *model.ExportGroup) *exportRollup {
	r, ok := rs[key]
	if !ok {
		r = &exportRollup{group: init()}
		rs[key] = r
	}
	return r
}

func (rs rollupSet) finish() map[string]*model.ExportGroup {
	out := make(map[string]*model.ExportGroup, len(rs))
	for key, r := range rs {
		if v, ok := r.scores.gen.value(); ok {
			r.group.AvgGenerationScore = roundedPtr(v)
		}
		if v, ok := r.scores.audio.value(); ok {
			r.group.AvgAudioQuality = roundedPtr(v)
		}
		if v, ok := r.scores.llm.value(); ok {
			r.group.AvgLLMAccuracy = roundedPtr(v)
		}
		out[key] = r.group
	}
	return out
}

func roundedPtr(v float64) *float64 {
	r := scoring.RoundTo(v, exportDecimals)
	return &r
}

// Export flattens every result into a document for offline analysis, with
// rollups by version, drum type, difficulty and each pair of those.
func (s *analyticsService) Export(ctx context.Context) (*model.ExportDocument, error) {
	logger := middleware.GetLogger(ctx)

	rows, err := s.loadRows(ctx, "", "")
	if err != nil {
		logger.Error("Failed to load rows for export", "error", err)
		return nil, model.NewAppError("EXPORT_FAILED", "Export failed: "+err.Error(), "", model.ErrInternalServer)
	}
	doc := buildExport(rows, s.now())
	logger.Info("Export built", "total_tests", doc.TotalTests, "user_notes", len(doc.UserNotes))
	return doc, nil
}

func buildExport(rows []model.ResultRow, now time.Time) *model.ExportDocument {
	doc := &model.ExportDocument{
		ExportTimestamp:        now.UTC().Format(time.RFC3339),
		TotalTests:             len(rows),
		ByVersion:              map[string]*model.ExportGroup{},
		ByDrumType:             map[string]*model.ExportGroup{},
		ByDifficulty:           map[string]*model.ExportGroup{},
		ByVersionAndDrum:       map[string]*model.ExportGroup{},
		ByVersionAndDifficulty: map[string]*model.ExportGroup{},
		ByDrumAndDifficulty:    map[string]*model.ExportGroup{},
		AllResults:             []model.ExportResult{},
		UserNotes:              []model.ExportNote{},
	}
	if len(rows) == 0 {
		return doc
	}

	var overall triple
	byVersion, byDrum, byDifficulty := rollupSet{}, rollupSet{}, rollupSet{}
	byVersionDrum, byVersionDifficulty, byDrumDifficulty := rollupSet{}, rollupSet{}, rollupSet{}

	for _, row := range rows {
		overall.add(row)

		version := versionLabel(row)
		drum := drumLabel(row)
		difficulty := row.Difficulty
		diffKey := strconv.Itoa(difficulty)

		groups := []*exportRollup{
			byVersion.get(version, func() *model.ExportGroup { return &model.ExportGroup{} }),
			byDrum.get(drum, func() *model.ExportGroup { return &model.ExportGroup{} }),
			byVersionDrum.get(version+"_"+drum, func() *model.ExportGroup {
				return &model.ExportGroup{Version: &version, DrumType: &drum}
			}),
			byVersionDifficulty.get(version+"_diff"+diffKey, func() *model.ExportGroup {
				return &model.ExportGroup{Version: &version, Difficulty: &difficulty}
			}),
			byDrumDifficulty.get(drum+"_diff"+diffKey, func() *model.ExportGroup {
				return &model.ExportGroup{DrumType: &drum, Difficulty: &difficulty}
			}),
		}
		diffGroup := byDifficulty.get(diffKey, func() *model.ExportGroup {
			return &model.ExportGroup{Difficulty: &difficulty, ScoreDistribution: model.NewScoreHistogram()}
		})
		groups = append(groups, diffGroup)
		for _, g := range groups {
			g.group.Count++
			g.scores.add(row)
		}
		if row.AudioQualityScore != nil {
			diffGroup.group.ScoreDistribution[scoring.ClampBucket(*row.AudioQualityScore)]++
		}

		doc.AllResults = append(doc.AllResults, exportResult(row, version, drum))
		if row.Notes != nil && strings.TrimSpace(*row.Notes) != "" {
			doc.UserNotes = append(doc.UserNotes, model.ExportNote{
				ResultID:          row.ResultID,
				Note:              *row.Notes,
				DrumType:          drum,
				ModelVersion:      version,
				Difficulty:        difficulty,
				AudioQualityScore: row.AudioQualityScore,
				LLMAccuracyScore:  row.LLMAccuracyScore,
				PromptText:        row.PromptText,
				TestedAt:          formatTimestamp(row.TestedAt),
			})
		}
	}

	doc.Summary = model.ExportSummary{
		OverallGenerationScore: scoring.RoundTo(overall.gen.orZero(), exportDecimals),
		AvgAudioQuality:        scoring.RoundTo(overall.audio.orZero(), exportDecimals),
		AvgLLMAccuracy:         scoring.RoundTo(overall.llm.orZero(), exportDecimals),
	}
	doc.ByVersion = byVersion.finish()
	doc.ByDrumType = byDrum.finish()
	doc.ByDifficulty = byDifficulty.finish()
	doc.ByVersionAndDrum = byVersionDrum.finish()
	doc.ByVersionAndDifficulty = byVersionDifficulty.finish()
	doc.ByDrumAndDifficulty = byDrumDifficulty.finish()
	return doc
}

func exportResult(row model.ResultRow, version, drum string) model.ExportResult {
	res := model.ExportResult{
		ResultID:          row.ResultID,
		PromptText:        row.PromptText,
		PromptCategory:    row.PromptCategory,
		DrumType:          drum,
		Difficulty:        row.Difficulty,
		ModelVersion:      version,
		AudioQualityScore: row.AudioQualityScore,
		LLMAccuracyScore:  row.LLMAccuracyScore,
		GeneratedJSON:     json.RawMessage(`{}`),
		TestedAt:          formatTimestamp(row.TestedAt),
		HasNotesAudio:     row.NotesAudioPath != nil && *row.NotesAudioPath != "",
	}
	if g, ok := effectiveGenerationScore(row); ok {
		res.GenerationScore = roundedPtr(g)
	}
	// Malformed stored JSON is exported as an empty object.
	if len(row.GeneratedJSON) > 0 && json.Valid(row.GeneratedJSON) {
		res.GeneratedJSON = json.RawMessage(row.GeneratedJSON)
	}
	if row.LLMResponse != nil {
		res.LLMResponse = *row.LLMResponse
	}
	if row.Notes != nil {
		res.Notes = *row.Notes
	}
	return res
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// CollectNotes gathers every non-empty note from results and failures,
// results first.
func (s *analyticsService) CollectNotes(ctx context.Context) ([]model.NoteRecord, error) {
	logger := middleware.GetLogger(ctx)
	rows, err := s.resultRepo.FindRows(ctx, s.db, "", "")
	if err != nil {
		logger.Error("Failed to load result notes", "error", err)
		return nil, model.ErrInternalServer
	}
	failures, err := s.failureRepo.List(ctx, s.db, model.LLMFailureFilter{})
	if err != nil {
		logger.Error("Failed to load failure notes", "error", err)
		return nil, model.ErrInternalServer
	}

	notes := []model.NoteRecord{}
	for _, row := range rows {
		if row.Notes == nil || strings.TrimSpace(*row.Notes) == "" {
			continue
		}
		promptID := row.PromptID
		notes = append(notes, model.NoteRecord{
			ID:         row.ResultID,
			Source:     NoteSourceResults,
			PromptID:   &promptID,
			PromptText: row.PromptText,
			Notes:      *row.Notes,
			RecordedAt: formatTimestamp(row.TestedAt),
		})
	}
	for _, f := range failures {
		if f.Notes == nil || strings.TrimSpace(*f.Notes) == "" {
			continue
		}
		notes = append(notes, model.NoteRecord{
			ID:         f.FailureID,
			Source:     NoteSourceFailures,
			PromptID:   f.PromptID,
			PromptText: f.PromptText,
			Notes:      *f.Notes,
			RecordedAt: formatTimestamp(f.CreatedAt),
		})
	}
	return notes, nil
}
