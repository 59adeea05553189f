package ingestion

import (
	"net/url"
	"strings"
)

// Board is a hosted applicant tracking system that serves job postings.
type Board string

// Known boards
const (
	BoardGreenhouse Board = "greenhouse"
	BoardLever      Board = "lever"
	BoardWorkday    Board = "workday"
	BoardAshby      Board = "ashby"
	BoardUnknown    Board = "unknown"
)

// DetectBoard identifies the job board from a posting URL.
func DetectBoard(pageURL string) Board {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return BoardUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	switch {
	case strings.HasSuffix(host, "greenhouse.io"):
		return BoardGreenhouse
	case strings.HasSuffix(host, "lever.co"):
		return BoardLever
	case strings.HasSuffix(host, "myworkdayjobs.com"), strings.HasSuffix(host, "workday.com"):
		return BoardWorkday
	case strings.HasSuffix(host, "ashbyhq.com"):
		return BoardAshby
	default:
		return BoardUnknown
	}
}

// boardSelectors are tried before the generic JobPostingSelectors.
func boardSelectors(b Board) []string {
	switch b {
	case BoardGreenhouse:
		return []string{".job__description.body", ".job__description", "#content"}
	case BoardLever:
		return []string{".posting-page .section-wrapper", ".posting-description"}
	case BoardWorkday:
		return []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']"}
	case BoardAshby:
		return []string{"[class*='descriptionText']"}
	default:
		return nil
	}
}

// boardNoise lists application forms and legal boilerplate a board appends to postings.
func boardNoise(b Board) []string {
	common := []string{
		"#application-form",
		".application-form",
		".eeo-statement",
		".voluntary-disclosure",
		".social-share",
	}
	switch b {
	case BoardGreenhouse:
		return append(common, ".application--wrapper", "#usa_self_id_section")
	case BoardLever:
		return append(common, ".posting-apply", ".lever-application-form")
	case BoardWorkday:
		return append(common, "[data-automation-id='applyButton']")
	default:
		return common
	}
}
