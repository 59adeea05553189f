package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/climb/internal/ats"
	"github.com/jonathan/climb/internal/config"
	"github.com/jonathan/climb/internal/fetch"
	"github.com/jonathan/climb/internal/ingestion"
	"github.com/jonathan/climb/internal/llm"
	"github.com/jonathan/climb/internal/schemas"
	"github.com/jonathan/climb/internal/types"
	"github.com/spf13/cobra"
)

var atsCmd = &cobra.Command{
	Use:   "ats",
	Short: "Score a resume against job keywords",
	Long: `Scores a resume JSON file against keywords given with --keywords, a job requirements
file given with --job, or keywords extracted from a job posting read from --posting
or downloaded from --posting-url (both require GEMINI_API_KEY). Sources are merged.`,
	RunE: runATS,
}

var (
	atsResume   string
	atsKeywords []string
	atsJob      string
	atsPosting  string
	atsURL      string
	atsJSON     bool
)

// newLLMClient is swapped out in tests.
var newLLMClient = func(ctx context.Context) (llm.Client, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required for --posting or --posting-url")
	}
	return llm.NewGeminiClient(ctx, &llm.Config{Model: cfg.GeminiModel, Temperature: llm.DefaultConfig().Temperature}, cfg.GeminiAPIKey)
}

func init() {
	atsCmd.Flags().StringVarP(&atsResume, "resume", "r", "", "Path to resume JSON (required)")
	atsCmd.Flags().StringSliceVarP(&atsKeywords, "keywords", "k", nil, "Comma-separated target keywords")
	atsCmd.Flags().StringVar(&atsJob, "job", "", `Path to job requirements JSON ({"keywords": [...], "requirements": [...]})`)
	atsCmd.Flags().StringVar(&atsPosting, "posting", "", "Path to a job posting (.txt or .html) to extract keywords from")
	atsCmd.Flags().StringVar(&atsURL, "posting-url", "", "URL of a job posting to download and extract keywords from")
	atsCmd.Flags().BoolVar(&atsJSON, "json", false, "Print the result as JSON")

	if err := atsCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}

	rootCmd.AddCommand(atsCmd)
}

func runATS(cmd *cobra.Command, _ []string) error {
	resume, err := loadResume(atsResume)
	if err != nil {
		return err
	}

	job := &types.JobRequirements{Keywords: atsKeywords}
	if atsJob != "" {
		fromFile, err := loadJob(atsJob)
		if err != nil {
			return err
		}
		job.Keywords = append(job.Keywords, fromFile.Keywords...)
		job.Requirements = append(job.Requirements, fromFile.Requirements...)
	}
	if atsPosting != "" || atsURL != "" {
		text, err := postingText(cmd.Context())
		if err != nil {
			return err
		}
		extracted, err := extractKeywords(cmd.Context(), text)
		if err != nil {
			return err
		}
		job.Keywords = append(job.Keywords, extracted.Keywords...)
		job.Requirements = append(job.Requirements, extracted.Requirements...)
	}

	result := ats.Score(resume, job)

	out := cmd.OutOrStdout()
	if atsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printATS(out, result)
	return nil
}

func loadResume(path string) (*types.ResumeContent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := schemas.Validate(schemas.ResumeContent, data); err != nil {
		return nil, fmt.Errorf("invalid resume %s: %w", path, err)
	}
	var resume types.ResumeContent
	if err := json.Unmarshal(data, &resume); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &resume, nil
}

func loadJob(path string) (*types.JobRequirements, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := schemas.Validate(schemas.JobKeywords, data); err != nil {
		return nil, fmt.Errorf("invalid job requirements %s: %w", path, err)
	}
	var job types.JobRequirements
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &job, nil
}

// postingText reads the posting named by --posting or --posting-url as plain text.
func postingText(ctx context.Context) (string, error) {
	if atsPosting != "" && atsURL != "" {
		return "", fmt.Errorf("use either --posting or --posting-url, not both")
	}

	if atsURL != "" {
		page, err := fetch.Posting(ctx, atsURL, nil)
		if err != nil {
			return "", err
		}
		if !page.IsHTML() {
			return ingestion.CleanText(page.HTML), nil
		}
		text, err := ingestion.ExtractJobTextFrom(page.HTML, page.URL)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from %s: %w", atsURL, err)
		}
		return text, nil
	}

	data, err := os.ReadFile(atsPosting)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", atsPosting, err)
	}
	switch strings.ToLower(filepath.Ext(atsPosting)) {
	case ".html", ".htm":
		text, err := ingestion.ExtractJobText(string(data))
		if err != nil {
			return "", fmt.Errorf("failed to extract text from %s: %w", atsPosting, err)
		}
		return text, nil
	default:
		return ingestion.CleanText(string(data)), nil
	}
}

func extractKeywords(ctx context.Context, text string) (*types.JobRequirements, error) {
	client, err := newLLMClient(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Close() }()

	return ats.ExtractKeywords(ctx, client, text)
}

func printATS(w io.Writer, r types.ATSResult) {
	_, _ = fmt.Fprintf(w, "ATS score: %d/100\n\n", r.Score)
	_, _ = fmt.Fprintf(w, "  Summary:    %3d\n", r.Sections.Summary)
	_, _ = fmt.Fprintf(w, "  Experience: %3d\n", r.Sections.Experience)
	_, _ = fmt.Fprintf(w, "  Education:  %3d\n", r.Sections.Education)
	_, _ = fmt.Fprintf(w, "  Skills:     %3d\n", r.Sections.Skills)
	_, _ = fmt.Fprintf(w, "  Keywords:   %3d\n", r.Sections.Keywords)

	if len(r.FoundKeywords) > 0 {
		_, _ = fmt.Fprintf(w, "\nFound: %s\n", strings.Join(r.FoundKeywords, ", "))
	}
	if len(r.MissingKeywords) > 0 {
		_, _ = fmt.Fprintf(w, "Missing: %s\n", strings.Join(r.MissingKeywords, ", "))
	}
	if len(r.Suggestions) > 0 {
		_, _ = fmt.Fprintln(w, "\nSuggestions:")
		for _, s := range r.Suggestions {
			_, _ = fmt.Fprintf(w, "  - %s\n", s)
		}
	}
}
