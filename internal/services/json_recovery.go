package services

import (
  "encoding/json"
  "strings"

  "github.com/onboardly/onboardly-backend/internal/pkg/apperr"
)

// Models wrap JSON in prose or markdown fences often enough that a direct
// Unmarshal is not good enough. The recovery ladder: direct parse, ```json
// fence, bare ``` fence, then a balanced-brace scan for the first object.

// ParseJSONObject recovers a JSON object from a raw completion.
func ParseJSONObject(raw string) (map[string]interface{}, error) {
  candidate, ok := extractJSON(raw)
  if !ok {
    return nil, &apperr.ParseError{Raw: raw}
  }
  var out map[string]interface{}
  if err := json.Unmarshal([]byte(candidate), &out); err != nil {
    return nil, &apperr.ParseError{Raw: raw}
  }
  return out, nil
}

// ParseInto recovers a JSON object from a raw completion and decodes it into v.
func ParseInto(raw string, v interface{}) error {
  candidate, ok := extractJSON(raw)
  if !ok {
    return &apperr.ParseError{Raw: raw}
  }
  if err := json.Unmarshal([]byte(candidate), v); err != nil {
    return &apperr.ParseError{Raw: raw}
  }
  return nil
}

func extractJSON(raw string) (string, bool) {
  trimmed := strings.TrimSpace(raw)
  if json.Valid([]byte(trimmed)) {
    return trimmed, true
  }
  if fenced, ok := extractFenced(trimmed, "```json"); ok {
    return fenced, true
  }
  if fenced, ok := extractFenced(trimmed, "```"); ok {
    return fenced, true
  }
  return extractBalanced(trimmed)
}

func extractFenced(raw, fence string) (string, bool) {
  start := strings.Index(raw, fence)
  if start == -1 {
    return "", false
  }
  rest := raw[start+len(fence):]
  end := strings.Index(rest, "```")
  if end == -1 {
    return "", false
  }
  candidate := strings.TrimSpace(rest[:end])
  if candidate == "" || !json.Valid([]byte(candidate)) {
    return "", false
  }
  return candidate, true
}

// extractBalanced scans for the first brace-balanced object, ignoring braces
// inside string literals.
func extractBalanced(raw string) (string, bool) {
  start := strings.IndexByte(raw, '{')
  if start == -1 {
    return "", false
  }
  depth := 0
  inString := false
  escaped := false
  for i := start; i < len(raw); i++ {
    ch := raw[i]
    if escaped {
      escaped = false
      continue
    }
    switch ch {
    case '\\':
      if inString {
        escaped = true
      }
    case '"':
      inString = !inString
    case '{':
      if !inString {
        depth++
      }
    case '}':
      if !inString {
        depth--
        if depth == 0 {
          candidate := raw[start : i+1]
          if json.Valid([]byte(candidate)) {
            return candidate, true
          }
          return "", false
        }
      }
    }
  }
  return "", false
}




