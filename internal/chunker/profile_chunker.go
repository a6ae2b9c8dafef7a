package chunker

import (
	"fmt"
	"strings"

	"digitaltwin/internal/domain"
)

// ProfileChunker flattens a structured profile into self-contained chunks,
// one per logical fact, with stable titles and categories. Chunk ids are
// assigned from a counter local to one pass, so the chunker is reentrant.
type ProfileChunker struct{}

func New() *ProfileChunker { return &ProfileChunker{} }

// Chunk converts the profile into an ordered chunk sequence. Sections are
// independent: an absent section contributes nothing and blocks nothing.
// The input is never mutated.
func (c *ProfileChunker) Chunk(p *domain.Profile) ([]domain.Chunk, error) {
	if p == nil {
		return nil, fmt.Errorf("nil profile: %w", domain.ErrChunking)
	}
	b := &builder{}
	b.personal(p.Personal)
	b.contact(p.Personal)
	b.compensation(p.SalaryLocation)
	b.experience(p.Experience)
	b.technicalSkills(p.Skills)
	b.softSkills(p.Skills)
	b.certifications(p.Skills)
	b.education(p.Education)
	b.projects(p.Projects)
	b.careerGoals(p.CareerGoals)
	b.interviewPrep(p.InterviewPrep)
	b.signalSummary(p.SignalSummary)
	return b.chunks, nil
}

// builder accumulates chunks and the id counter for a single pass.
type builder struct {
	next   int
	chunks []domain.Chunk
}

func (b *builder) add(title string, kind domain.Kind, content string, tags ...string) {
	b.next++
	b.chunks = append(b.chunks, domain.Chunk{
		ID:      fmt.Sprintf("chunk_%d", b.next),
		Title:   title,
		Kind:    kind,
		Content: content,
		Tags:    lowerAll(tags),
	})
}

func (b *builder) personal(p *domain.Personal) {
	if p == nil {
		return
	}
	content := fmt.Sprintf("Name: %s. Title: %s. Location: %s. %s",
		p.Name, p.Title, p.Location, p.Summary)
	b.add("Personal Information", domain.KindPersonal, content,
		"name", "title", "location", "summary")

	if p.ElevatorPitch != "" {
		b.add("Elevator Pitch", domain.KindPersonal, p.ElevatorPitch,
			"elevator_pitch", "introduction")
	}
}

func (b *builder) contact(p *domain.Personal) {
	if p == nil || p.Contact == nil {
		return
	}
	ct := p.Contact
	content := fmt.Sprintf("Email: %s. Phone: %s. LinkedIn: %s. GitHub: %s.",
		ct.Email, ct.Phone, ct.LinkedIn, ct.GitHub)
	b.add("Contact Information", domain.KindContact, content,
		"email", "phone", "linkedin", "github")
}

func (b *builder) compensation(sl *domain.SalaryLocation) {
	if sl == nil {
		return
	}
	content := fmt.Sprintf(
		"Salary expectations: %s. Location preferences: %s. Remote experience: %s. Work authorization: %s.",
		sl.SalaryExpectations, strings.Join(sl.LocationPreferences, ", "),
		sl.RemoteExperience, sl.WorkAuthorization)
	b.add("Salary and Location Preferences", domain.KindCompensation, content,
		"salary", "location", "remote", "authorization")
}

func (b *builder) experience(entries []domain.Experience) {
	for _, exp := range entries {
		content := fmt.Sprintf("Company: %s. Role: %s. Duration: %s. Context: %s. Team: %s.",
			exp.Company, exp.Title, exp.Duration, exp.CompanyContext, exp.TeamStructure)
		b.add("Work Experience - "+exp.Company, domain.KindExperience, content,
			"work", "job", exp.Company)

		for i, star := range exp.Achievements {
			starContent := fmt.Sprintf("At %s: Situation: %s. Task: %s. Action: %s. Result: %s.",
				exp.Company, star.Situation, star.Task, star.Action, star.Result)
			b.add(fmt.Sprintf("Achievement at %s #%d", exp.Company, i+1),
				domain.KindAchievement, starContent,
				"star", "accomplishment", exp.Company)
		}

		if len(exp.TechnicalSkillsUsed) > 0 {
			skillsContent := fmt.Sprintf("Technical skills used at %s: %s.",
				exp.Company, strings.Join(exp.TechnicalSkillsUsed, ", "))
			b.add("Skills Used at "+exp.Company, domain.KindSkills, skillsContent,
				exp.TechnicalSkillsUsed...)
		}
	}
}

func (b *builder) technicalSkills(s *domain.Skills) {
	if s == nil || s.Technical == nil {
		return
	}
	tech := s.Technical

	if len(tech.ProgrammingLanguages) > 0 {
		langs := make([]string, 0, len(tech.ProgrammingLanguages))
		for _, lang := range tech.ProgrammingLanguages {
			if lang.Structured() {
				langs = append(langs, fmt.Sprintf("%s (%s, %s years, frameworks: %s)",
					lang.Name, lang.Proficiency, lang.Years, strings.Join(lang.Frameworks, ", ")))
			} else {
				langs = append(langs, lang.Name)
			}
		}
		b.add("Programming Languages", domain.KindSkills,
			fmt.Sprintf("Programming languages: %s.", strings.Join(langs, "; ")),
			"programming", "languages", "technical")
	}
	if len(tech.Frontend) > 0 {
		b.add("Frontend Skills", domain.KindSkills,
			fmt.Sprintf("Frontend technologies: %s.", strings.Join(tech.Frontend, ", ")),
			"frontend", "ui", "web")
	}
	if len(tech.Backend) > 0 {
		b.add("Backend Skills", domain.KindSkills,
			fmt.Sprintf("Backend technologies: %s.", strings.Join(tech.Backend, ", ")),
			"backend", "server", "api")
	}
	if len(tech.Databases) > 0 {
		b.add("Database Skills", domain.KindSkills,
			fmt.Sprintf("Database technologies: %s.", strings.Join(tech.Databases, ", ")),
			"database", "sql", "data")
	}
	if len(tech.CloudPlatforms) > 0 {
		b.add("Cloud & DevOps Skills", domain.KindSkills,
			fmt.Sprintf("Cloud and DevOps: %s.", strings.Join(tech.CloudPlatforms, ", ")),
			"cloud", "devops", "aws", "deployment")
	}
	if len(tech.AIML) > 0 {
		b.add("AI & Machine Learning Skills", domain.KindSkills,
			fmt.Sprintf("AI and ML experience: %s.", strings.Join(tech.AIML, ", ")),
			"ai", "ml", "machine learning", "automation")
	}
}

func (b *builder) softSkills(s *domain.Skills) {
	if s == nil || len(s.SoftSkills) == 0 {
		return
	}
	b.add("Soft Skills", domain.KindSkills,
		fmt.Sprintf("Soft skills: %s.", strings.Join(s.SoftSkills, ", ")),
		"soft skills", "interpersonal", "communication")
}

func (b *builder) certifications(s *domain.Skills) {
	if s == nil || len(s.Certification) == 0 {
		return
	}
	certs := make([]string, 0, len(s.Certification))
	for _, cert := range s.Certification {
		if cert.Structured() {
			certs = append(certs, fmt.Sprintf("%s from %s (%s)", cert.Name, cert.Provider, cert.Year))
		} else {
			certs = append(certs, cert.Name)
		}
	}
	b.add("Certifications & Training", domain.KindCertification,
		fmt.Sprintf("Certifications and training: %s.", strings.Join(certs, "; ")),
		"certification", "training", "education")
}

func (b *builder) education(edu *domain.Education) {
	if edu == nil {
		return
	}
	content := fmt.Sprintf("Education: %s in %s from %s. Graduated: %s. Location: %s.",
		edu.Degree, edu.Specialisation, edu.University, edu.GraduationYear, edu.Location)
	if len(edu.RelevantCoursework) > 0 {
		content += fmt.Sprintf(" Relevant coursework: %s.", strings.Join(edu.RelevantCoursework, ", "))
	}
	b.add("Education", domain.KindEducation, content, "university", "degree", "academic")
}

func (b *builder) projects(projects []domain.Project) {
	for _, proj := range projects {
		content := fmt.Sprintf("Project: %s. Type: %s. Description: %s. Technologies: %s.",
			proj.Name, proj.Type, proj.Description, strings.Join(proj.Technologies, ", "))
		if len(proj.KeyFeatures) > 0 {
			content += fmt.Sprintf(" Key features: %s.", strings.Join(proj.KeyFeatures, ", "))
		}
		if !proj.Impact.IsZero() {
			content += fmt.Sprintf(" Impact: %s.", proj.Impact)
		}
		b.add("Project - "+proj.Name, domain.KindProject, content, proj.Technologies...)
	}
}

func (b *builder) careerGoals(goals *domain.CareerGoals) {
	if goals == nil {
		return
	}
	content := fmt.Sprintf(
		"Career goals - Short term: %s. Long term: %s. Learning focus: %s. Industries interested: %s.",
		goals.ShortTerm, goals.LongTerm, strings.Join(goals.LearningFocus, ", "),
		strings.Join(goals.IndustriesInterested, ", "))
	b.add("Career Goals", domain.KindGoals, content, "career", "goals", "aspirations", "future")
}

func (b *builder) interviewPrep(prep *domain.InterviewPrep) {
	if prep == nil {
		return
	}
	if q := prep.CommonQuestions; q != nil {
		b.questions("Behavioral", q.Behavioral)
		b.questions("Technical", q.Technical)
		b.questions("Situational", q.Situational)
	}
	for _, w := range prep.WeaknessMitigation {
		content := fmt.Sprintf("Weakness: %s. Mitigation: %s", w.Weakness, w.Mitigation)
		b.add("Weakness & Mitigation - "+truncate(w.Weakness, 30),
			domain.KindInterview, content, "weakness", "improvement", "growth")
	}
}

// questions emits one chunk per prepared pair. Entries missing either the
// question or the answer are skipped silently.
func (b *builder) questions(style string, pairs []domain.QA) {
	for _, qa := range pairs {
		if qa.Question == "" || qa.Answer == "" {
			continue
		}
		content := fmt.Sprintf("Question: %s. Answer: %s", qa.Question, qa.Answer)
		b.add(fmt.Sprintf("%s Q&A - %s", style, truncate(qa.Question, 50)),
			domain.KindInterview, content,
			style, "interview", "question")
	}
}

func (b *builder) signalSummary(sum *domain.SignalSummary) {
	if sum == nil {
		return
	}
	content := fmt.Sprintf(
		"Strengths: %s. Recommended for roles: %s. Unique value proposition: %s.",
		strings.Join(sum.Strengths, ", "), strings.Join(sum.RecommendedFor, ", "),
		sum.UniqueValueProposition)
	b.add("Professional Summary & Strengths", domain.KindSummary, content,
		"strengths", "value", "recommendation")
}

// truncate shortens s to at most n runes and marks the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + "..."
}

func lowerAll(tags []string) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = strings.ToLower(t)
	}
	return out
}

var _ domain.Chunker = (*ProfileChunker)(nil)
