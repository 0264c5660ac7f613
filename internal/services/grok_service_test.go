package services

import (
  "context"
  "errors"
  "os"
  "path/filepath"
  "testing"
)

type completionCall struct {
  system      string
  user        string
  temperature float64
  model       string
}

type fakeClient struct {
  responses []string
  errs      []error
  calls     []completionCall
}

func (f *fakeClient) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64, model string) (string, error) {
  i := len(f.calls)
  f.calls = append(f.calls, completionCall{system: systemPrompt, user: userPrompt, temperature: temperature, model: model})
  if i < len(f.errs) && f.errs[i] != nil {
    return "", f.errs[i]
  }
  if i < len(f.responses) {
    return f.responses[i], nil
  }
  return "", errors.New("unexpected completion call")
}

func (f *fakeClient) DefaultModel() string { return "grok-main" }
func (f *fakeClient) ResumeModel() string  { return "grok-resume" }

func newServiceWithPrompts(t *testing.T, client GrokClient, promptFiles map[string]string) *grokService {
  t.Helper()
  dir := t.TempDir()
  for name, content := range promptFiles {
    if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
      t.Fatalf("failed to write prompt file: %v", err)
    }
  }
  return &grokService{client: client, promptsDir: dir, log: newTestLogger(t)}
}

func TestAnalyzeResume_ParsesAnalysisAndExpectation(t *testing.T) {
  client := &fakeClient{responses: []string{
    "```json\n{\"background\": \"distributed systems\", \"experience_level\": \"senior\", \"skills\": [\"go\"]}\n```",
    "  Hit the ground running.  ",
  }}
  svc := newServiceWithPrompts(t, client, map[string]string{
    "senior_engineer_prompt.md": "senior philosophy",
    "junior_engineer_prompt.md": "junior philosophy",
  })

  analysis, err := svc.AnalyzeResume(context.Background(), "resume text")
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if analysis.Background != "distributed systems" || analysis.ExperienceLevel != "senior" {
    t.Fatalf("unexpected analysis: %#v", analysis)
  }
  if analysis.RampUpExpectation != "Hit the ground running." {
    t.Fatalf("expected trimmed expectation, got %q", analysis.RampUpExpectation)
  }
  if len(client.calls) != 2 {
    t.Fatalf("expected 2 completion calls, got %d", len(client.calls))
  }
  if client.calls[0].model != "grok-resume" || client.calls[0].temperature != 0.3 {
    t.Fatalf("unexpected analysis call: %#v", client.calls[0])
  }
  if client.calls[1].model != "grok-resume" || client.calls[1].temperature != 0.5 {
    t.Fatalf("unexpected expectation call: %#v", client.calls[1])
  }
}

func TestAnalyzeResume_MissingPromptFileFallsBackToWelcome(t *testing.T) {
  client := &fakeClient{responses: []string{
    `{"background": "x", "experience_level": "junior"}`,
  }}
  svc := newServiceWithPrompts(t, client, nil)

  analysis, err := svc.AnalyzeResume(context.Background(), "resume text")
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if analysis.RampUpExpectation != welcomeFallback {
    t.Fatalf("unexpected expectation: %q", analysis.RampUpExpectation)
  }
  if len(client.calls) != 1 {
    t.Fatalf("expected a single completion call, got %d", len(client.calls))
  }
}

func TestAnalyzeResume_ExpectationCallFailureFallsBack(t *testing.T) {
  client := &fakeClient{
    responses: []string{`{"background": "x", "experience_level": "senior"}`, ""},
    errs:      []error{nil, errBoom},
  }
  svc := newServiceWithPrompts(t, client, map[string]string{
    "senior_engineer_prompt.md": "senior philosophy",
  })

  analysis, err := svc.AnalyzeResume(context.Background(), "resume text")
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if analysis.RampUpExpectation != welcomeFallbackOnError {
    t.Fatalf("unexpected expectation: %q", analysis.RampUpExpectation)
  }
}

func TestExpectationContext_PicksSeniorityBand(t *testing.T) {
  svc := newServiceWithPrompts(t, &fakeClient{}, map[string]string{
    "senior_engineer_prompt.md": "senior philosophy",
    "junior_engineer_prompt.md": "junior philosophy",
  })

  cases := []struct {
    level string
    want  string
  }{
    {"Senior Engineer", "senior philosophy"},
    {"staff", "senior philosophy"},
    {"Tech Lead", "senior philosophy"},
    {"junior", "junior philosophy"},
    {"mid", "junior philosophy"},
    {"", "junior philosophy"},
  }
  for _, tc := range cases {
    if got := svc.ExpectationContext(tc.level); got != tc.want {
      t.Fatalf("level %q: got %q want %q", tc.level, got, tc.want)
    }
  }
}

func TestGenerateCodingTasks_DecodesTasksEnvelope(t *testing.T) {
  client := &fakeClient{responses: []string{
    `{"tasks": [{"id": "task_1", "title": "Fix the build", "difficulty": "easy"}]}`,
  }}
  svc := newServiceWithPrompts(t, client, nil)

  tasks, err := svc.GenerateCodingTasks(context.Background(), map[string]interface{}{"week": 1}, nil, "")
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if len(tasks) != 1 || tasks[0].ID != "task_1" || tasks[0].Title != "Fix the build" {
    t.Fatalf("unexpected tasks: %#v", tasks)
  }
}

func TestGenerateQuiz_DecodesQuestionsEnvelopeWithIndexAnswer(t *testing.T) {
  client := &fakeClient{responses: []string{
    `{"questions": [{"id": "q1", "question": "Which?", "options": ["a", "b", "c"], "correct_answer": 2}]}`,
  }}
  svc := newServiceWithPrompts(t, client, nil)

  quiz, err := svc.GenerateQuiz(context.Background(), map[string]interface{}{"week": 1}, "reading")
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if len(quiz) != 1 || quiz[0].CorrectAnswer != 2 {
    t.Fatalf("unexpected quiz: %#v", quiz)
  }
}

func TestGenerateReason_TrimsResponse(t *testing.T) {
  client := &fakeClient{responses: []string{"  Because the scheduler depends on it.  \n"}}
  svc := newServiceWithPrompts(t, client, nil)

  reason, err := svc.GenerateReason(context.Background(), "ctx", "coding task", "Fix it", "desc")
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if reason != "Because the scheduler depends on it." {
    t.Fatalf("unexpected reason: %q", reason)
  }
  if client.calls[0].model != "grok-resume" {
    t.Fatalf("expected resume model for reasons, got %q", client.calls[0].model)
  }
}

func TestIsSeniorBand(t *testing.T) {
  for level, want := range map[string]bool{
    "senior":         true,
    "Staff Engineer": true,
    "team lead":      true,
    "junior":         false,
    "mid-level":      false,
    "":               false,
  } {
    if got := isSeniorBand(level); got != want {
      t.Fatalf("level %q: got %v want %v", level, got, want)
    }
  }
}




