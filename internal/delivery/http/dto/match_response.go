package dto

import (
	"skill-passport/internal/domain/matching"
	"skill-passport/internal/domain/profile"
)

// MatchResultResponse is one ranked posting with its display fields resolved.
// Requirements lists the user's hard skills, which the job card renders as
// skill tags.
type MatchResultResponse struct {
	JobID            string   `json:"jobId"`
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	JobDescription   string   `json:"jobDescription"`
	ApplyURL         string   `json:"applyUrl"`
	CompanyURL       string   `json:"companyUrl"`
	CompanyLogo      string   `json:"companyLogo,omitempty"`
	PostedAt         string   `json:"postedAt"`
	SeniorityLevel   string   `json:"seniorityLevel,omitempty"`
	EmploymentType   string   `json:"employmentType"`
	Tags             []string `json:"tags"`
	Requirements     []string `json:"requirements"`
	HardSkillPercent int      `json:"hardSkillPercent"`
	SoftSkillPercent int      `json:"softSkillPercent"`
	MatchPercent     int      `json:"matchPercent"`
}

type MatchesResponse struct {
	User    *profile.MergedProfile `json:"user"`
	Matches []MatchResultResponse  `json:"matches"`
}

type JobMatchResponse struct {
	JobID               string `json:"jobId"`
	JobTitle            string `json:"jobTitle"`
	Company             string `json:"company"`
	HardSkillPercent    int    `json:"hardSkillPercent"`
	SoftSkillPercent    int    `json:"softSkillPercent"`
	OverallMatchPercent int    `json:"overallMatchPercent"`
}

func NewMatchResultResponse(r matching.MatchResult, requirements []string) MatchResultResponse {
	j := r.Job
	tags := j.Tags
	if tags == nil {
		tags = []string{}
	}
	if requirements == nil {
		requirements = []string{}
	}
	return MatchResultResponse{
		JobID:            j.ID,
		Title:            j.Title,
		Company:          j.Company,
		Location:         j.Location,
		JobDescription:   j.DisplayDescription(),
		ApplyURL:         j.DisplayApplyURL(),
		CompanyURL:       j.CompanyURL,
		CompanyLogo:      j.CompanyLogo,
		PostedAt:         j.DisplayPostedAt(),
		SeniorityLevel:   j.SeniorityLevel,
		EmploymentType:   j.DisplayEmploymentType(),
		Tags:             tags,
		Requirements:     requirements,
		HardSkillPercent: r.HardSkillPercent,
		SoftSkillPercent: r.SoftSkillPercent,
		MatchPercent:     r.MatchPercent,
	}
}

func NewJobMatchResponse(r matching.MatchResult) JobMatchResponse {
	return JobMatchResponse{
		JobID:               r.Job.ID,
		JobTitle:            r.Job.Title,
		Company:             r.Job.Company,
		HardSkillPercent:    r.HardSkillPercent,
		SoftSkillPercent:    r.SoftSkillPercent,
		OverallMatchPercent: r.MatchPercent,
	}
}
