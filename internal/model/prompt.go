// internal/model/prompt.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	MinDifficulty = 1
	MaxDifficulty = 10

	// Free-text submissions that omit these get the defaults below.
	DefaultFreeTextDifficulty = 5
	DefaultFreeTextCategory   = "user-generated"

	// Bulk imports without an explicit difficulty or category.
	DefaultImportDifficulty = 5
	DefaultImportCategory   = "imported"
)

// Prompt is a test prompt sent to the generation pipeline.
type Prompt struct {
	PromptID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Text               string         `gorm:"type:text;not null" json:"text"`
	Difficulty         int            `gorm:"not null;index" json:"difficulty"`
	Category           *string        `json:"category"`
	DrumType           *string        `gorm:"index" json:"drum_type"`
	IsUserGenerated    bool           `gorm:"not null;default:false;index" json:"is_user_generated"`
	UsedCount          int            `gorm:"not null;default:0;index" json:"used_count"`
	ExpectedParameters datatypes.JSON `json:"expected_parameters"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`

	Results []TestResult `gorm:"foreignKey:PromptID;references:PromptID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Prompt) TableName() string {
	return "prompts"
}

// PromptFilter narrows a prompt listing.
type PromptFilter struct {
	DifficultyMin int
	DifficultyMax int
	DrumType      string
	Category      string
	Search        string
	Limit         int
	Offset        int
}

// RotationPosition is the caller-held cursor into the rotation grid. It is
// never stored server side; each rotation response returns the position of
// the prompt it picked so the caller can send it back on the next call.
type RotationPosition struct {
	DrumType   string     `json:"drum_type"`
	Difficulty int        `json:"difficulty"`
	ExcludeID  *uuid.UUID `json:"exclude_id,omitempty"`
}

// RotationRequest is the input of a next-in-rotation call.
type RotationRequest struct {
	CurrentDrumType    *string
	CurrentDifficulty  *int
	ExcludeID          *uuid.UUID
	StartFromBeginning bool
}

// RotationResult pairs the chosen prompt with the position to feed back.
type RotationResult struct {
	Prompt   *Prompt
	Position RotationPosition
}

// PostPromptRequest creates a prompt.
type PostPromptRequest struct {
	Text               string         `json:"text" validate:"required"`
	Difficulty         int            `json:"difficulty" validate:"required,min=1,max=10"`
	Category           *string        `json:"category,omitempty"`
	DrumType           *string        `json:"drum_type,omitempty"`
	IsUserGenerated    bool           `json:"is_user_generated"`
	ExpectedParameters datatypes.JSON `json:"expected_parameters,omitempty"`
}

// PutPromptRequest replaces the editable fields of a prompt.
type PutPromptRequest struct {
	Text               string         `json:"text" validate:"required"`
	Difficulty         int            `json:"difficulty" validate:"required,min=1,max=10"`
	Category           *string        `json:"category,omitempty"`
	DrumType           *string        `json:"drum_type,omitempty"`
	ExpectedParameters datatypes.JSON `json:"expected_parameters,omitempty"`
}

// ImportPromptsRequest is a bulk import of prompt texts.
type ImportPromptsRequest struct {
	Prompts    []string `json:"prompts" validate:"required,min=1"`
	Difficulty int      `json:"difficulty,omitempty" validate:"omitempty,min=1,max=10"`
	Category   *string  `json:"category,omitempty"`
	DrumType   *string  `json:"drum_type,omitempty"`
}

type ImportPromptsResponse struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// PromptResponse is the wire shape of a prompt.
type PromptResponse struct {
	ID                 uuid.UUID      `json:"id"`
	Text               string         `json:"text"`
	Difficulty         int            `json:"difficulty"`
	Category           *string        `json:"category"`
	DrumType           *string        `json:"drum_type"`
	IsUserGenerated    bool           `json:"is_user_generated"`
	CreatedAt          time.Time      `json:"created_at"`
	UsedCount          int            `json:"used_count"`
	ExpectedParameters datatypes.JSON `json:"expected_parameters"`
}

// RotationPromptResponse is a prompt plus the rotation cursor to send back.
type RotationPromptResponse struct {
	PromptResponse
	Position RotationPosition `json:"position"`
}

func NewPromptResponse(p *Prompt) *PromptResponse {
	return &PromptResponse{
		ID:                 p.PromptID,
		Text:               p.Text,
		Difficulty:         p.Difficulty,
		Category:           p.Category,
		DrumType:           p.DrumType,
		IsUserGenerated:    p.IsUserGenerated,
		CreatedAt:          p.CreatedAt,
		UsedCount:          p.UsedCount,
		ExpectedParameters: p.ExpectedParameters,
	}
}

// SeedSummary reports what a reseed removed and inserted.
type SeedSummary struct {
	ClearedResults  int64 `json:"cleared_results"`
	ClearedFailures int64 `json:"cleared_failures"`
	ClearedPrompts  int64 `json:"cleared_prompts"`
	Seeded          int   `json:"seeded"`
}
