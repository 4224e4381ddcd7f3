// internal/model/analytics.go
package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// UnknownLabel groups rows whose model version or drum type is missing.
const UnknownLabel = "unknown"

// ScoreHistogram counts audio scores by integer bucket 1-10.
type ScoreHistogram map[int]int

func NewScoreHistogram() ScoreHistogram {
	h := make(ScoreHistogram, MaxScore)
	for i := MinScore; i <= MaxScore; i++ {
		h[i] = 0
	}
	return h
}

// DashboardSummary is the dashboard view. Averages here are ceiled for
// display, unlike the export document which rounds.
type DashboardSummary struct {
	OverallGenerationScore int                `json:"overall_generation_score"`
	AvgAudioQuality        float64            `json:"avg_audio_quality"`
	AvgLLMAccuracy         float64            `json:"avg_llm_accuracy"`
	TotalTests             int                `json:"total_tests"`
	ByVersion              []VersionSummary   `json:"by_version"`
	DifficultyDistribution []DifficultyBucket `json:"difficulty_distribution"`
	DrumTypeDistribution   []DrumTypeBucket   `json:"drum_type_distribution"`
}

type VersionSummary struct {
	Version         string  `json:"version"`
	Count           int     `json:"count"`
	GenerationScore int     `json:"generation_score"`
	AvgAudio        float64 `json:"avg_audio"`
	AvgLLM          float64 `json:"avg_llm"`
}

type DifficultyBucket struct {
	Difficulty        int            `json:"difficulty"`
	TotalTests        int            `json:"total_tests"`
	ScoreDistribution ScoreHistogram `json:"score_distribution"`
}

type DrumTypeBucket struct {
	DrumType          string         `json:"drum_type"`
	DrumTypeKey       string         `json:"drum_type_key"`
	TotalTests        int            `json:"total_tests"`
	GenerationScore   int            `json:"generation_score"`
	ScoreDistribution ScoreHistogram `json:"score_distribution"`
}

// ExportDocument is the flattened analysis export.
type ExportDocument struct {
	ExportTimestamp        string                  `json:"export_timestamp"`
	TotalTests             int                     `json:"total_tests"`
	Summary                ExportSummary           `json:"summary"`
	ByVersion              map[string]*ExportGroup `json:"by_version"`
	ByDrumType             map[string]*ExportGroup `json:"by_drum_type"`
	ByDifficulty           map[string]*ExportGroup `json:"by_difficulty"`
	ByVersionAndDrum       map[string]*ExportGroup `json:"by_version_and_drum"`
	ByVersionAndDifficulty map[string]*ExportGroup `json:"by_version_and_difficulty"`
	ByDrumAndDifficulty    map[string]*ExportGroup `json:"by_drum_and_difficulty"`
	AllResults             []ExportResult          `json:"all_results"`
	UserNotes              []ExportNote            `json:"user_notes"`
}

type ExportSummary struct {
	OverallGenerationScore float64 `json:"overall_generation_score"`
	AvgAudioQuality        float64 `json:"avg_audio_quality"`
	AvgLLMAccuracy         float64 `json:"avg_llm_accuracy"`
}

// ExportGroup is one rollup cell. Averages are omitted when the group has no
// usable value for them.
type ExportGroup struct {
	Version            *string        `json:"version,omitempty"`
	DrumType           *string        `json:"drum_type,omitempty"`
	Difficulty         *int           `json:"difficulty,omitempty"`
	Count              int            `json:"count"`
	AvgGenerationScore *float64       `json:"avg_generation_score,omitempty"`
	AvgAudioQuality    *float64       `json:"avg_audio_quality,omitempty"`
	AvgLLMAccuracy     *float64       `json:"avg_llm_accuracy,omitempty"`
	ScoreDistribution  ScoreHistogram `json:"score_distribution,omitempty"`
}

type ExportResult struct {
	ResultID          uuid.UUID       `json:"result_id"`
	PromptText        string          `json:"prompt_text"`
	PromptCategory    *string         `json:"prompt_category"`
	DrumType          string          `json:"drum_type"`
	Difficulty        int             `json:"difficulty"`
	ModelVersion      string          `json:"model_version"`
	AudioQualityScore *float64        `json:"audio_quality_score"`
	LLMAccuracyScore  *float64        `json:"llm_accuracy_score"`
	GenerationScore   *float64        `json:"generation_score"`
	GeneratedJSON     json.RawMessage `json:"generated_json"`
	LLMResponse       string          `json:"llm_response"`
	TestedAt          string          `json:"tested_at"`
	Notes             string          `json:"notes"`
	HasNotesAudio     bool            `json:"has_notes_audio"`
}

type ExportNote struct {
	ResultID          uuid.UUID `json:"result_id"`
	Note              string    `json:"note"`
	DrumType          string    `json:"drum_type"`
	ModelVersion      string    `json:"model_version"`
	Difficulty        int       `json:"difficulty"`
	AudioQualityScore *float64  `json:"audio_quality_score"`
	LLMAccuracyScore  *float64  `json:"llm_accuracy_score"`
	PromptText        string    `json:"prompt_text"`
	TestedAt          string    `json:"tested_at"`
}

// NoteRecord is one free-text note from results or failures, used by the
// notes export tool.
type NoteRecord struct {
	ID         uuid.UUID
	Source     string
	PromptID   *uuid.UUID
	PromptText string
	Notes      string
	RecordedAt string
}
