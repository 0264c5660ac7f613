package services

import (
  "encoding/json"
  "fmt"
)

// Prompt builders for every structured generation call. Each returns the
// system and user message for one completion.

func promptJSON(v interface{}) string {
  data, err := json.MarshalIndent(v, "", "  ")
  if err != nil {
    return "{}"
  }
  return string(data)
}

func resumeAnalysisPrompt(resumeText string) (string, string) {
  system := "You are an expert technical recruiter and career advisor. Analyze resumes thoroughly and provide actionable insights."
  user := fmt.Sprintf(`Analyze this resume and provide a structured assessment:

Resume:
%s

Provide analysis in JSON format with the following structure:
{
    "background": "Brief summary of candidate's background",
    "skills": ["skill1", "skill2", ...],
    "experience_level": "junior|mid|senior",
    "strengths": ["strength1", "strength2", ...],
    "learning_areas": ["area1", "area2", ...]
}

Focus on technical skills, experience level, and areas where the candidate could benefit from additional learning.`, resumeText)
  return system, user
}

func rampUpExpectationPrompt(background, level, expectationContext string) (string, string) {
  system := "You are a thoughtful engineering manager setting expectations for a new hire."
  user := fmt.Sprintf(`Based on the candidate's analysis and the following onboarding philosophy, write a concise (2-3 sentences) "Ramp Up Expectation" message to the candidate.

Candidate Background: %s
Experience Level: %s

Onboarding Philosophy:
%s

The message should set the tone for their first 4 weeks, highlighting what matters most (e.g., specific deep dives for seniors vs. practical tasks for juniors).
Directly address the candidate ("You will focus on..."). Keep it under 50 words.`, background, level, expectationContext)
  return system, user
}

func codebaseAnalysisPrompt(repoURL string) (string, string) {
  system := "You are an expert software architect who specializes in onboarding new team members. Analyze codebases to create effective learning paths."
  user := fmt.Sprintf(`Analyze this codebase repository: %s

Provide a comprehensive analysis in JSON format:
{
    "tech_stack": ["technology1", "technology2", ...],
    "architecture": "Brief description of the architecture",
    "main_components": [
        {"name": "component1", "description": "...", "complexity": "low|medium|high"},
        ...
    ],
    "dependencies": ["dependency1", "dependency2", ...],
    "key_patterns": ["pattern1", "pattern2", ...],
    "recommended_learning_path": ["topic1", "topic2", ...]
}

Focus on understanding the codebase structure to help create a learning plan for new hires.`, repoURL)
  return system, user
}

func learningPlanPrompt(resumeAnalysis, codebaseAnalysis interface{}) (string, string) {
  system := "You are an expert technical mentor who designs effective onboarding programs. Create structured, personalized learning plans."
  user := fmt.Sprintf(`Create a personalized 4-week onboarding learning plan for a new hire.

Candidate Profile:
%s

Codebase Analysis:
%s

Generate a comprehensive 4-week plan in JSON format:
{
    "overview": "Brief overview of the learning journey",
    "weeks": [
        {
            "week_number": 1,
            "title": "Week 1 title",
            "objectives": ["objective1", "objective2", ...],
            "topics": ["topic1", "topic2", ...],
            "focus_areas": ["area1", "area2", ...]
        },
        ... (for all 4 weeks)
    ]
}

The plan should:
- Start with fundamentals and gradually increase complexity
- Align with the candidate's experience level
- Cover the main components and patterns of the codebase
- Include both theoretical knowledge and practical coding
- Be realistic and achievable within 4 weeks`, promptJSON(resumeAnalysis), promptJSON(codebaseAnalysis))
  return system, user
}

func masterPlanSkeletonPrompt(codebaseAnalysis interface{}) (string, string) {
  system := "You are an expert technical mentor who designs comprehensive onboarding programs. Create structured, detailed learning plans."
  user := fmt.Sprintf(`Create a comprehensive 4-week onboarding plan for new hires joining a codebase project.

Codebase Analysis:
%s

Generate a detailed 4-week curriculum in JSON format:
{
    "overview": "Brief overview of the learning journey (2-3 sentences)",
    "weeks": [
        {
            "week_number": 1,
            "title": "Week 1: Foundations and Setup",
            "description": "What the new hire will learn this week",
            "objectives": ["objective1", "objective2", ...],
            "topics": ["topic1", "topic2", ...],
            "focus_areas": ["area1", "area2", ...]
        },
        ... (for all 4 weeks)
    ]
}

The plan should:
- Week 1: Environment setup, basic concepts, architecture overview
- Week 2: Core components and data structures
- Week 3: Advanced features and integrations
- Week 4: Performance, testing, and best practices
- Be generic enough to work for most new hires
- Progressive difficulty from beginner to intermediate
- Include both theory and hands-on coding`, promptJSON(codebaseAnalysis))
  return system, user
}

func weeklyReadingPrompt(week, codebaseAnalysis interface{}, expectationContext string) (string, string) {
  system := "You are an expert technical writer who creates clear, comprehensive documentation for developers. Write engaging educational content. ALWAYS return valid JSON."
  reasonPrompt := ""
  if expectationContext != "" {
    reasonPrompt = fmt.Sprintf(`
Expectation Context:
%s

Also, add a "reason" field to the JSON explaining why this reading is relevant to the expectation.`, expectationContext)
  }
  user := fmt.Sprintf(`Create comprehensive reading material for this week of the onboarding plan:

Week Plan:
%s

Codebase Context:
%s
%s

Generate detailed reading material in JSON format:
{
    "title": "Week title",
    "content": "Comprehensive wiki-style content in markdown format covering all topics. Include code examples, diagrams (as ASCII), and explanations. Make it 1500-2000 words.",
    "key_concepts": ["concept1", "concept2", ...],
    "resources": ["resource1 with URL", "resource2 with URL", ...],
    "reason": "One sentence explaining relevance to the expectation"
}

IMPORTANT: Return ONLY valid JSON, no markdown code blocks or extra text.
Make the content educational, engaging, and specific to the codebase.`, promptJSON(week), promptJSON(codebaseAnalysis), reasonPrompt)
  return system, user
}

func codingTasksPrompt(week, codebaseAnalysis interface{}, expectationContext string) (string, string) {
  system := "You are an expert coding instructor who designs hands-on programming exercises. Create practical, educational tasks."
  reasonPrompt := ""
  if expectationContext != "" {
    reasonPrompt = fmt.Sprintf(`
Expectation Context:
%s

For EACH task, add a "reason" field explaining why it is relevant to the expectation.`, expectationContext)
  }
  user := fmt.Sprintf(`Create 3-5 coding tasks for this week of the onboarding plan:

Week Plan:
%s

Codebase Context:
%s
%s

Generate tasks in JSON format:
{
    "tasks": [
        {
            "id": "task-1",
            "title": "Task title",
            "description": "Detailed description of what to implement",
            "difficulty": "easy|medium|hard",
            "estimated_time": "30 mins - 2 hours",
            "files_to_modify": ["file1.py", "file2.js"],
            "hints": ["hint1", "hint2", ...],
            "reason": "Relevance to expectation"
        },
        ...
    ]
}

Tasks should:
- Be practical and related to the actual codebase
- Progressively increase in difficulty
- Help reinforce the week's learning objectives
- Be achievable with the knowledge gained`, promptJSON(week), promptJSON(codebaseAnalysis), reasonPrompt)
  return system, user
}

const quizReadingSeedLimit = 1000

func quizPrompt(week interface{}, readingContent string) (string, string) {
  system := "You are an expert educator who creates effective assessments. Design quiz questions that test understanding, not just memorization."
  if len(readingContent) > quizReadingSeedLimit {
    readingContent = readingContent[:quizReadingSeedLimit]
  }
  user := fmt.Sprintf(`Create a quiz with 8-10 multiple choice questions based on this week's content:

Week Plan:
%s

Reading Content (first 1000 chars):
%s...

Generate quiz in JSON format:
{
    "questions": [
        {
            "id": "q1",
            "question": "Question text",
            "options": ["Option A", "Option B", "Option C", "Option D"],
            "correct_answer": 0,
            "explanation": "Why this answer is correct"
        },
        ...
    ]
}

Questions should:
- Test understanding of key concepts
- Include some practical application questions
- Have clear, unambiguous correct answers
- Provide helpful explanations`, promptJSON(week), readingContent)
  return system, user
}

func reasoningPrompt(expectationContext, itemType, itemTitle, itemDescription string) (string, string) {
  system := "You are a mentor explaining the 'why' behind a learning plan."
  user := fmt.Sprintf(`Explain why this %s is relevant for the candidate based on these expectations:

Expectations:
%s

Item: %s
Description: %s

Provide a ONE SENTENCE reason (under 30 words) starting with "Relevant because..." or "This helps you...".`, itemType, expectationContext, itemTitle, itemDescription)
  return system, user
}

func personalizePlanPrompt(overview string, resumeAnalysis interface{}, weekTitles interface{}, experienceLevel string) (string, string) {
  system := "You are an expert mentor who personalizes learning plans. Be concise and focus on meaningful adjustments."
  user := fmt.Sprintf(`Personalize this learning plan for a specific candidate.

Master Plan Overview:
%s

Candidate Profile:
%s

Week Titles:
%s

Based on the candidate's experience level (%s), skills, and learning areas, provide:

1. Personalized objectives for each week (adjust difficulty and focus)
2. Recommended emphasis areas based on their background
3. Any topics they can skip or accelerate through
4. Specific focus areas for their knowledge gaps

Return JSON:
{
    "personalized_overview": "Brief personalized intro (2 sentences)",
    "recommendations": ["recommendation1", "recommendation2", ...],
    "week_adjustments": [
        {
            "week_number": 1,
            "difficulty": "beginner|intermediate|advanced",
            "emphasis": ["area1", "area2"],
            "skip_topics": ["topic1"],
            "additional_focus": ["area1"]
        },
        ...
    ]
}

Keep it concise - just the key personalizations.`, overview, promptJSON(resumeAnalysis), promptJSON(weekTitles), experienceLevel)
  return system, user
}




