package types

// Typed records for the JSON payload columns. Field names mirror the keys the
// completion prompts ask for, so a decoded model response maps straight onto
// these structs.

type ResumeAnalysis struct {
	Background        string   `json:"background"`
	Skills            []string `json:"skills"`
	ExperienceLevel   string   `json:"experience_level"`
	Strengths         []string `json:"strengths"`
	LearningAreas     []string `json:"learning_areas"`
	RampUpExpectation string   `json:"ramp_up_expectation,omitempty"`
}

type ReadingMaterial struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	KeyConcepts []string `json:"key_concepts,omitempty"`
	Resources   []string `json:"resources,omitempty"`
	Reason      string   `json:"reason,omitempty"`
}

type CodingTask struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Difficulty    string   `json:"difficulty,omitempty"`
	EstimatedTime string   `json:"estimated_time,omitempty"`
	FilesToModify []string `json:"files_to_modify,omitempty"`
	Hints         []string `json:"hints,omitempty"`
	Reason        string   `json:"reason,omitempty"`
}

type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// WeekPlan is the thin skeleton of one week, before any content generation.
type WeekPlan struct {
	WeekNumber  int      `json:"week_number"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Objectives  []string `json:"objectives,omitempty"`
	Topics      []string `json:"topics,omitempty"`
	FocusAreas  []string `json:"focus_areas,omitempty"`
}

// MasterWeek is a fully generated week inside a master plan row.
type MasterWeek struct {
	WeekPlan
	ReadingMaterial *ReadingMaterial `json:"reading_material,omitempty"`
	CodingTasks     []CodingTask     `json:"coding_tasks,omitempty"`
	Quiz            []QuizQuestion   `json:"quiz,omitempty"`
}

// PlanWeek is a thin week inside a candidate's personalized plan. It carries
// the per-candidate adjustments but no content; content lives in
// weekly_content rows.
type PlanWeek struct {
	WeekPlan
	Difficulty      string   `json:"difficulty,omitempty"`
	Emphasis        []string `json:"emphasis,omitempty"`
	SkipTopics      []string `json:"skip_topics,omitempty"`
	AdditionalFocus []string `json:"additional_focus,omitempty"`
}

// WeekAdjustment is one week's personalization delta, keyed by week number.
type WeekAdjustment struct {
	WeekNumber      int      `json:"week_number"`
	Difficulty      string   `json:"difficulty,omitempty"`
	Emphasis        []string `json:"emphasis,omitempty"`
	SkipTopics      []string `json:"skip_topics,omitempty"`
	AdditionalFocus []string `json:"additional_focus,omitempty"`
}

// PlanPersonalization is the single-call personalization response.
type PlanPersonalization struct {
	PersonalizedOverview string           `json:"personalized_overview"`
	Recommendations      []string         `json:"recommendations,omitempty"`
	WeekAdjustments      []WeekAdjustment `json:"week_adjustments,omitempty"`
}

// PlanData is the payload of a learning_plans row.
type PlanData struct {
	Overview        string     `json:"overview"`
	Recommendations []string   `json:"recommendations,omitempty"`
	Weeks           []PlanWeek `json:"weeks"`
}




