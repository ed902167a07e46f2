package job

import "strings"

const (
	DefaultDescription    = "No description available"
	DefaultApplyURL       = "#"
	DefaultPostedAt       = "Recently"
	DefaultEmploymentType = "Full time"
)

// Posting is one record of the job catalog. Field names follow the catalog
// file; several display fields have a primary and a legacy spelling.
type Posting struct {
	ID               string    `json:"jobId" mapstructure:"jobId"`
	Title            string    `json:"title" mapstructure:"title"`
	Company          string    `json:"company" mapstructure:"company"`
	CompanyURL       string    `json:"companyUrl,omitempty" mapstructure:"companyUrl"`
	CompanyLogo      string    `json:"companyLogo,omitempty" mapstructure:"companyLogo"`
	Location         string    `json:"location" mapstructure:"location"`
	EmploymentType   string    `json:"employmentType,omitempty" mapstructure:"employmentType"`
	SeniorityLevel   string    `json:"seniorityLevel,omitempty" mapstructure:"seniorityLevel"`
	HowRecent        string    `json:"howRecent,omitempty" mapstructure:"howRecent"`
	PostedDate       string    `json:"postedDate,omitempty" mapstructure:"postedDate"`
	RoleOverview     string    `json:"roleOverview,omitempty" mapstructure:"roleOverview"`
	JobDescription   string    `json:"jobDescription,omitempty" mapstructure:"jobDescription"`
	AboutCompany     string    `json:"aboutCompany,omitempty" mapstructure:"aboutCompany"`
	Responsibilities []string  `json:"responsibilities,omitempty" mapstructure:"responsibilities"`
	Requirements     []string  `json:"requirements,omitempty" mapstructure:"requirements"`
	Tags             []string  `json:"tags,omitempty" mapstructure:"tags"`
	ApplyLink        string    `json:"applyLink,omitempty" mapstructure:"applyLink"`
	ApplyURL         string    `json:"applyUrl,omitempty" mapstructure:"applyUrl"`
	Timezone         string    `json:"timezone,omitempty" mapstructure:"timezone"`
	Source           string    `json:"source,omitempty" mapstructure:"source"`
	Embedding        []float64 `json:"embedding,omitempty" mapstructure:"embedding"`
}

func (p Posting) HasEmbedding() bool {
	return len(p.Embedding) > 0
}

// DisplayDescription resolves roleOverview, then jobDescription.
func (p Posting) DisplayDescription() string {
	return firstNonBlank(DefaultDescription, p.RoleOverview, p.JobDescription)
}

// DisplayApplyURL resolves applyLink, then applyUrl.
func (p Posting) DisplayApplyURL() string {
	return firstNonBlank(DefaultApplyURL, p.ApplyLink, p.ApplyURL)
}

// DisplayPostedAt resolves howRecent, then postedDate.
func (p Posting) DisplayPostedAt() string {
	return firstNonBlank(DefaultPostedAt, p.HowRecent, p.PostedDate)
}

func (p Posting) DisplayEmploymentType() string {
	return firstNonBlank(DefaultEmploymentType, p.EmploymentType)
}

// EmbeddingText is the text a catalog embedding is computed from.
func (p Posting) EmbeddingText() string {
	parts := make([]string, 0, 4+len(p.Requirements)+len(p.Tags))
	parts = append(parts, p.Title, p.SeniorityLevel)
	if d := p.DisplayDescription(); d != DefaultDescription {
		parts = append(parts, d)
	}
	parts = append(parts, p.Responsibilities...)
	parts = append(parts, p.Requirements...)
	parts = append(parts, p.Tags...)

	out := make([]string, 0, len(parts))
	for _, s := range parts {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return strings.Join(out, " ")
}

func firstNonBlank(def string, vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return def
}
