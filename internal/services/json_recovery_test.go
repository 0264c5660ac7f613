package services

import (
  "errors"
  "strings"
  "testing"

  "github.com/onboardly/onboardly-backend/internal/pkg/apperr"
)

func TestParseJSONObject_DirectJSON(t *testing.T) {
  out, err := ParseJSONObject(`  {"a": 1, "b": "x"}  `)
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if out["a"] != float64(1) || out["b"] != "x" {
    t.Fatalf("unexpected result: %#v", out)
  }
}

func TestParseJSONObject_JSONFenceWithProse(t *testing.T) {
  raw := "Here is the result:\n```json\n{\"a\": 1}\n```\nLet me know if you need anything else."
  out, err := ParseJSONObject(raw)
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if out["a"] != float64(1) {
    t.Fatalf("unexpected result: %#v", out)
  }
}

func TestParseJSONObject_BareFence(t *testing.T) {
  raw := "```\n{\"ok\": true}\n```"
  out, err := ParseJSONObject(raw)
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if out["ok"] != true {
    t.Fatalf("unexpected result: %#v", out)
  }
}

func TestParseJSONObject_BalancedScanIgnoresBracesInStrings(t *testing.T) {
  raw := `The object is {"a": {"b": "}"}, "c": "{"} and nothing more.`
  out, err := ParseJSONObject(raw)
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  inner, ok := out["a"].(map[string]interface{})
  if !ok || inner["b"] != "}" {
    t.Fatalf("unexpected result: %#v", out)
  }
  if out["c"] != "{" {
    t.Fatalf("unexpected result: %#v", out)
  }
}

func TestParseJSONObject_NoJSONReturnsParseError(t *testing.T) {
  raw := strings.Repeat("definitely not json ", 20)
  _, err := ParseJSONObject(raw)
  var parseErr *apperr.ParseError
  if !errors.As(err, &parseErr) {
    t.Fatalf("expected ParseError, got %v", err)
  }
  // The message keeps only the head of the raw response.
  msg := parseErr.Error()
  if !strings.HasPrefix(msg, "could not parse JSON from response: ") {
    t.Fatalf("unexpected message: %q", msg)
  }
  if len(msg) > len("could not parse JSON from response: ")+200 {
    t.Fatalf("preview not truncated: %d chars", len(msg))
  }
}

func TestParseInto_DecodesStruct(t *testing.T) {
  var out struct {
    Title string `json:"title"`
    Count int    `json:"count"`
  }
  if err := ParseInto("```json\n{\"title\": \"t\", \"count\": 3}\n```", &out); err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if out.Title != "t" || out.Count != 3 {
    t.Fatalf("unexpected result: %#v", out)
  }
}

func TestParseInto_TypeMismatchReturnsParseError(t *testing.T) {
  var out struct {
    Count int `json:"count"`
  }
  err := ParseInto(`{"count": "not a number"}`, &out)
  var parseErr *apperr.ParseError
  if !errors.As(err, &parseErr) {
    t.Fatalf("expected ParseError, got %v", err)
  }
}




