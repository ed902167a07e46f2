package profile

// FormInput is the latest form submission of a user.
type FormInput struct {
	EducationLevel  string   `json:"education_level" mapstructure:"education_level"`
	Stream          string   `json:"stream" mapstructure:"stream"`
	JobRole         string   `json:"job_role" mapstructure:"job_role"`
	ExperienceYears int      `json:"experience_years" mapstructure:"experience_years"`
	Skills          []string `json:"skills" mapstructure:"skills"`
}

// PersonaAnalysis holds the fixed trait set, each scored in [0,100].
type PersonaAnalysis struct {
	Communication  float64 `json:"communication" mapstructure:"communication"`
	Teamwork       float64 `json:"teamwork" mapstructure:"teamwork"`
	ProblemSolving float64 `json:"problem_solving" mapstructure:"problem_solving"`
	Leadership     float64 `json:"leadership" mapstructure:"leadership"`
	Adaptability   float64 `json:"adaptability" mapstructure:"adaptability"`
}

// MergedProfile is the persisted composite of static profile, roadmap
// history, assessment scores and form input. UserID is the store key.
type MergedProfile struct {
	UserID          string          `json:"user_uid" mapstructure:"user_uid"`
	Name            string          `json:"name" mapstructure:"name"`
	Email           string          `json:"email" mapstructure:"email"`
	Interests       []string        `json:"interests" mapstructure:"interests"`
	RoadmapSkills   []string        `json:"roadmap_skills" mapstructure:"roadmap_skills"`
	PersonaAnalysis PersonaAnalysis `json:"persona_analysis" mapstructure:"persona_analysis"`
	FormInput       FormInput       `json:"form_input" mapstructure:"form_input"`
}

type StaticProfile struct {
	UserID    string   `mapstructure:"user_uid"`
	UID       string   `mapstructure:"uid"`
	Username  string   `mapstructure:"username"`
	FirstName string   `mapstructure:"first_name"`
	LastName  string   `mapstructure:"last_name"`
	Email     string   `mapstructure:"email"`
	Interests []string `mapstructure:"interests"`
}

// Key is user_uid, falling back to uid.
func (p StaticProfile) Key() string {
	if p.UserID != "" {
		return p.UserID
	}
	return p.UID
}

type Roadmap struct {
	UID             string   `mapstructure:"uid"`
	UserID          string   `mapstructure:"user_uid"`
	Title           string   `mapstructure:"roadmap_title"`
	SkillObjectives []string `mapstructure:"skill_objectives"`
}

type Preassessment struct {
	UserID                    string             `mapstructure:"user_uid"`
	SoftSkillScores           map[string]float64 `mapstructure:"soft_skill_scores"`
	PersonalityCategoryScores map[string]float64 `mapstructure:"personality_category_scores"`

	// Key order of the score objects as stored, when known.
	SoftSkillOrder   []string `mapstructure:"-"`
	PersonalityOrder []string `mapstructure:"-"`
}
