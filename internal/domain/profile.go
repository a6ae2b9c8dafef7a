package domain

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Profile is the structured professional profile document. Every section is
// optional; a nil section simply produces no chunks.
type Profile struct {
	Personal       *Personal       `json:"personal,omitempty"`
	SalaryLocation *SalaryLocation `json:"salary_location,omitempty"`
	Experience     []Experience    `json:"experience,omitempty"`
	Skills         *Skills         `json:"skills,omitempty"`
	Education      *Education      `json:"education,omitempty"`
	Projects       []Project       `json:"projects_portfolio,omitempty"`
	CareerGoals    *CareerGoals    `json:"career_goals,omitempty"`
	InterviewPrep  *InterviewPrep  `json:"interview_prep,omitempty"`
	SignalSummary  *SignalSummary  `json:"interview_signal_summary,omitempty"`
}

// Personal holds biographical fields and the contact sub-section.
type Personal struct {
	Name          string   `json:"name"`
	Title         string   `json:"title"`
	Location      string   `json:"location"`
	Summary       string   `json:"summary"`
	ElevatorPitch string   `json:"elevator_pitch"`
	Contact       *Contact `json:"contact,omitempty"`
}

// Contact lists the reachable channels.
type Contact struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

// SalaryLocation holds compensation and location preferences.
type SalaryLocation struct {
	SalaryExpectations  string   `json:"salary_expectations"`
	LocationPreferences []string `json:"location_preferences"`
	RemoteExperience    string   `json:"remote_experience"`
	WorkAuthorization   string   `json:"work_authorization"`
}

// Experience is one employer tenure.
type Experience struct {
	Company             string            `json:"company"`
	Title               string            `json:"title"`
	Duration            string            `json:"duration"`
	CompanyContext      string            `json:"company_context"`
	TeamStructure       string            `json:"team_structure"`
	Achievements        []StarAchievement `json:"achievements_star"`
	TechnicalSkillsUsed []string          `json:"technical_skills_used"`
}

// StarAchievement is a Situation/Task/Action/Result record.
type StarAchievement struct {
	Situation string `json:"situation"`
	Task      string `json:"task"`
	Action    string `json:"action"`
	Result    string `json:"result"`
}

// Skills groups the technical taxonomy, soft skills and certifications.
type Skills struct {
	Technical     *TechnicalSkills `json:"technical,omitempty"`
	SoftSkills    []string         `json:"soft_skills"`
	Certification []Certification  `json:"certifications"`
}

// TechnicalSkills is the per-category technical taxonomy.
type TechnicalSkills struct {
	ProgrammingLanguages []Language `json:"programming_languages"`
	Frontend             []string   `json:"frontend"`
	Backend              []string   `json:"backend"`
	Databases            []string   `json:"databases"`
	CloudPlatforms       []string   `json:"cloud_platforms"`
	AIML                 []string   `json:"ai_ml"`
}

// Language is one programming-language entry. The source document allows
// either a bare string ("Go") or a structured record with proficiency,
// years and frameworks.
type Language struct {
	Name        string
	Proficiency string
	Years       string
	Frameworks  []string
	structured  bool
}

// Structured reports whether the entry carried proficiency/years detail.
func (l Language) Structured() bool { return l.structured }

func (l *Language) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		l.Name = plain
		return nil
	}
	var obj struct {
		Language    string     `json:"language"`
		Proficiency string     `json:"proficiency"`
		Years       FlexString `json:"years"`
		Frameworks  []string   `json:"frameworks"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		// Tolerate odd entry shapes; they render as empty labels.
		return nil
	}
	l.Name = obj.Language
	l.Proficiency = obj.Proficiency
	l.Years = string(obj.Years)
	l.Frameworks = obj.Frameworks
	l.structured = true
	return nil
}

// Certification is one certification entry, string or structured.
type Certification struct {
	Name       string
	Provider   string
	Year       string
	structured bool
}

// Structured reports whether the entry carried provider/year detail.
func (c Certification) Structured() bool { return c.structured }

func (c *Certification) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		c.Name = plain
		return nil
	}
	var obj struct {
		Name     string     `json:"name"`
		Provider string     `json:"provider"`
		Year     FlexString `json:"year"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	c.Name = obj.Name
	c.Provider = obj.Provider
	c.Year = string(obj.Year)
	c.structured = true
	return nil
}

// FlexString decodes any JSON scalar into its textual form, so numeric and
// string-valued year fields both round-trip.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	*f = FlexString(rawScalar(data))
	return nil
}

// Education holds the single education record.
type Education struct {
	Degree             string     `json:"degree"`
	Specialisation     string     `json:"specialisation"`
	University         string     `json:"university"`
	GraduationYear     FlexString `json:"graduation_year"`
	Location           string     `json:"location"`
	RelevantCoursework []string   `json:"relevant_coursework"`
}

// Project is one portfolio entry.
type Project struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	KeyFeatures  []string `json:"key_features"`
	Impact       Impact   `json:"impact"`
}

// Impact is either a free-text statement or a metric-to-value mapping. The
// mapping renders as comma-joined "metric: value" pairs in metric name order.
type Impact struct {
	Text    string
	Metrics map[string]string
}

// IsZero reports whether no impact information is present.
func (im Impact) IsZero() bool { return im.Text == "" && len(im.Metrics) == 0 }

// String renders the impact for chunk content.
func (im Impact) String() string {
	if im.Text != "" {
		return im.Text
	}
	keys := make([]string, 0, len(im.Metrics))
	for k := range im.Metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+im.Metrics[k])
	}
	return strings.Join(parts, ", ")
}

func (im *Impact) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		im.Text = plain
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	im.Metrics = make(map[string]string, len(raw))
	for k, v := range raw {
		im.Metrics[k] = rawScalar(v)
	}
	return nil
}

// CareerGoals holds short/long-term goals and interests.
type CareerGoals struct {
	ShortTerm            string   `json:"short_term"`
	LongTerm             string   `json:"long_term"`
	LearningFocus        []string `json:"learning_focus"`
	IndustriesInterested []string `json:"industries_interested"`
}

// InterviewPrep holds prepared Q&A material.
type InterviewPrep struct {
	CommonQuestions    *CommonQuestions `json:"common_questions,omitempty"`
	WeaknessMitigation []Weakness       `json:"weakness_mitigation"`
}

// CommonQuestions buckets prepared answers by question style.
type CommonQuestions struct {
	Behavioral  []QA `json:"behavioral"`
	Technical   []QA `json:"technical"`
	Situational []QA `json:"situational"`
}

// QA is one prepared question/answer pair. Array entries that are not
// objects decode to the zero value and are skipped during chunking.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (q *QA) UnmarshalJSON(data []byte) error {
	var obj struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	q.Question = obj.Question
	q.Answer = obj.Answer
	return nil
}

// Weakness is one weakness/mitigation pair.
type Weakness struct {
	Weakness   string `json:"weakness"`
	Mitigation string `json:"mitigation"`
}

// SignalSummary is the closing strengths/fit summary.
type SignalSummary struct {
	Strengths              []string `json:"strengths"`
	RecommendedFor         []string `json:"recommended_for"`
	UniqueValueProposition string   `json:"unique_value_proposition"`
}

// rawScalar renders a JSON scalar without quotes; non-scalars keep their
// JSON encoding.
func rawScalar(raw json.RawMessage) string {
	if string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return string(raw)
}
