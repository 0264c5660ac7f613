package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/onboardly/onboardly-backend/internal/pkg/apperr"
)

type APIError struct {
  Message string `json:"message"`
  Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, ErrorEnvelope{
    Error: APIError{
      Message: msg,
      Code:    code,
    },
  })
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}

// RespondAppError maps the error taxonomy onto HTTP statuses.
func RespondAppError(c *gin.Context, err error) {
  var upstreamErr *apperr.UpstreamError
  var parseErr *apperr.ParseError
  switch {
  case errors.Is(err, apperr.ErrNotFound):
    RespondError(c, http.StatusNotFound, "not_found", err)
  case errors.Is(err, apperr.ErrPrecursorMissing):
    RespondError(c, http.StatusBadRequest, "precursor_missing", err)
  case errors.Is(err, apperr.ErrInvalidPath):
    RespondError(c, http.StatusBadRequest, "invalid_path", err)
  case errors.As(err, &upstreamErr):
    RespondError(c, http.StatusBadGateway, "upstream_error", err)
  case errors.As(err, &parseErr):
    RespondError(c, http.StatusBadGateway, "parse_error", err)
  default:
    RespondError(c, http.StatusInternalServerError, "internal_error", err)
  }
}




