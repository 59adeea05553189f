package ats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/climb/internal/llm"
	"github.com/jonathan/climb/internal/prompts"
	"github.com/jonathan/climb/internal/schemas"
	"github.com/jonathan/climb/internal/types"
)

// maxJobTextRunes bounds the posting text sent to the completion service.
const maxJobTextRunes = 20000

// ErrEmptyJobText is returned when there is nothing to extract from.
var ErrEmptyJobText = errors.New("job text is empty")

// ExtractKeywords asks the completion service for the keywords and requirements in a
// job posting. The response is schema-checked before it is trusted.
func ExtractKeywords(ctx context.Context, client llm.Client, jobText string) (*types.JobRequirements, error) {
	jobText = strings.TrimSpace(jobText)
	if jobText == "" {
		return nil, ErrEmptyJobText
	}
	if r := []rune(jobText); len(r) > maxJobTextRunes {
		jobText = string(r[:maxJobTextRunes])
	}

	prompt, err := prompts.Render("ats.json", "extract-keywords", map[string]string{"JobText": jobText})
	if err != nil {
		return nil, err
	}

	raw, err := client.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to extract keywords: %w", err)
	}

	if err := schemas.Validate(schemas.JobKeywords, []byte(raw)); err != nil {
		return nil, fmt.Errorf("keyword extraction returned invalid JSON: %w", err)
	}

	var req types.JobRequirements
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return nil, fmt.Errorf("failed to decode extracted keywords: %w", err)
	}

	// de-duplicate the way scoring will see them
	req.Keywords = TargetKeywords(&types.JobRequirements{Keywords: req.Keywords})
	req.Requirements = TargetKeywords(&types.JobRequirements{Requirements: req.Requirements})
	return &req, nil
}
