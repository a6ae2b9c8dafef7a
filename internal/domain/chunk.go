package domain

// Kind is the closed category tag attached to each chunk. It is metadata for
// filtering and debugging; retrieval ranks purely on embedded text.
type Kind string

const (
	KindPersonal      Kind = "personal"
	KindContact       Kind = "contact"
	KindCompensation  Kind = "compensation"
	KindExperience    Kind = "experience"
	KindAchievement   Kind = "achievement"
	KindSkills        Kind = "skills"
	KindCertification Kind = "certification"
	KindEducation     Kind = "education"
	KindProject       Kind = "project"
	KindGoals         Kind = "goals"
	KindInterview     Kind = "interview"
	KindSummary       Kind = "summary"
)

// Kinds returns the closed set of chunk categories.
func Kinds() []Kind {
	return []Kind{
		KindPersonal, KindContact, KindCompensation, KindExperience,
		KindAchievement, KindSkills, KindCertification, KindEducation,
		KindProject, KindGoals, KindInterview, KindSummary,
	}
}

// Chunk is one self-contained retrievable unit derived from a single logical
// fact of the profile.
type Chunk struct {
	ID      string
	Title   string
	Kind    Kind
	Content string
	Tags    []string
}

// RetrievedResult is one ranked match coming back from the vector index,
// with title and content recovered from stored metadata.
type RetrievedResult struct {
	ID      string
	Score   float64
	Title   string
	Content string
}
