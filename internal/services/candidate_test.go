package services

import (
  "context"
  "strings"
  "testing"

  "github.com/onboardly/onboardly-backend/internal/repos"
)

func newCandidateService(t *testing.T) CandidateService {
  t.Helper()
  gdb := newTestDB(t)
  log := newTestLogger(t)
  return NewCandidateService(repos.NewCandidateRepo(gdb, log), log)
}

func TestUploadResume_DerivesNameAndEmail(t *testing.T) {
  svc := newCandidateService(t)

  candidate, err := svc.UploadResume(context.Background(), "elon_musk.pdf", "", "", "resume body")
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if candidate.Name != "Elon Musk" {
    t.Fatalf("unexpected name: %q", candidate.Name)
  }
  if candidate.Email != "elon.musk@example.com" {
    t.Fatalf("unexpected email: %q", candidate.Email)
  }
  if len(candidate.ResumeAnalysis) != 0 {
    t.Fatalf("expected analysis pending, got %s", candidate.ResumeAnalysis)
  }
}

func TestUploadResume_DedupesByResumeText(t *testing.T) {
  svc := newCandidateService(t)

  first, err := svc.UploadResume(context.Background(), "jane-doe.pdf", "", "", "same resume text")
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  second, err := svc.UploadResume(context.Background(), "different_name.pdf", "", "", "same resume text")
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if first.ID != second.ID {
    t.Fatalf("expected dedup by resume text, got %s and %s", first.ID, second.ID)
  }

  all, err := svc.List(context.Background())
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if len(all) != 1 {
    t.Fatalf("expected a single candidate, got %d", len(all))
  }
}

func TestUploadResume_ExplicitNameAndEmailWin(t *testing.T) {
  svc := newCandidateService(t)

  candidate, err := svc.UploadResume(context.Background(), "whatever.pdf", "Grace Hopper", "grace@navy.mil", "cobol")
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if candidate.Name != "Grace Hopper" || candidate.Email != "grace@navy.mil" {
    t.Fatalf("unexpected candidate: %q %q", candidate.Name, candidate.Email)
  }
}

func TestUploadResume_NoNameFallsBackToHashedEmail(t *testing.T) {
  svc := newCandidateService(t)

  candidate, err := svc.UploadResume(context.Background(), "", "", "", "anonymous resume")
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if candidate.Name != "Unknown" {
    t.Fatalf("unexpected name: %q", candidate.Name)
  }
  if !strings.HasPrefix(candidate.Email, "candidate_") || !strings.HasSuffix(candidate.Email, "@example.com") {
    t.Fatalf("unexpected fallback email: %q", candidate.Email)
  }
}

func TestNameFromFilename(t *testing.T) {
  cases := map[string]string{
    "elon_musk.pdf":     "Elon Musk",
    "Jane-Doe.PDF":      "Jane Doe",
    "single.pdf":        "Single",
    "already clean.pdf": "Already Clean",
  }
  for in, want := range cases {
    if got := nameFromFilename(in); got != want {
      t.Fatalf("filename %q: got %q want %q", in, got, want)
    }
  }
}

func TestGetStatus_ReportsAnalysisCompletion(t *testing.T) {
  gdb := newTestDB(t)
  log := newTestLogger(t)
  candidateRepo := repos.NewCandidateRepo(gdb, log)
  svc := NewCandidateService(candidateRepo, log)

  candidate, err := svc.UploadResume(context.Background(), "jane_doe.pdf", "", "", "resume")
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }

  status, err := svc.GetStatus(context.Background(), candidate.ID)
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if status.AnalysisComplete {
    t.Fatalf("expected analysis pending")
  }

  if err := candidateRepo.UpdateResumeAnalysis(context.Background(), nil, candidate.ID, []byte(`{"background": "x"}`)); err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  status, err = svc.GetStatus(context.Background(), candidate.ID)
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if !status.AnalysisComplete || status.ResumeAnalysis == nil {
    t.Fatalf("expected completed analysis, got %#v", status)
  }
}




