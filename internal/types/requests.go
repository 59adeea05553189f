package types

import "time"

// CreateApplicationRequest is the body of POST /applications.
type CreateApplicationRequest struct {
	Company     string     `json:"company" validate:"required,max=200"`
	RoleTitle   string     `json:"role_title" validate:"required,max=200"`
	JobURL      string     `json:"job_url,omitempty" validate:"omitempty,url"`
	Status      Stage      `json:"status" validate:"omitempty,oneof=applied screening interview offer rejected withdrawn"`
	AppliedDate *time.Time `json:"applied_date,omitempty"`
	Notes       string     `json:"notes,omitempty" validate:"max=5000"`
}

// Validate validates the CreateApplicationRequest.
func (r *CreateApplicationRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateStatusRequest is the body of PUT /applications/{id}/status.
type UpdateStatusRequest struct {
	Status Stage `json:"status" validate:"required,oneof=applied screening interview offer rejected withdrawn"`
}

// Validate validates the UpdateStatusRequest.
func (r *UpdateStatusRequest) Validate() error {
	return validate.Struct(r)
}

// CreateResumeRequest is the body of POST /resumes.
type CreateResumeRequest struct {
	Title   string        `json:"title" validate:"required,max=200"`
	Content ResumeContent `json:"content"`
}

// Validate validates the CreateResumeRequest.
func (r *CreateResumeRequest) Validate() error {
	return validate.Struct(r)
}

// ScoreRequest is the body of POST /ats/score.
type ScoreRequest struct {
	Resume ResumeContent   `json:"resume"`
	Job    JobRequirements `json:"job"`
}

// ExtractKeywordsRequest is the body of POST /ats/keywords.
// Exactly one of Text or HTML is expected; HTML wins when both are set.
type ExtractKeywordsRequest struct {
	Text string `json:"text,omitempty" validate:"required_without=HTML,max=100000"`
	HTML string `json:"html,omitempty" validate:"required_without=Text,max=500000"`
}

// Validate validates the ExtractKeywordsRequest.
func (r *ExtractKeywordsRequest) Validate() error {
	return validate.Struct(r)
}

// ScenariosRequest is the body of POST /forecast/scenarios.
type ScenariosRequest struct {
	Scenarios []Scenario `json:"scenarios" validate:"required,min=1,max=10,dive"`
}

// Validate validates the ScenariosRequest.
func (r *ScenariosRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ProjectionInput shape at the HTTP boundary.
func (p *ProjectionInput) Validate() error {
	return validate.Struct(p)
}
