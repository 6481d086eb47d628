// Package problem writes RFC 9457 problem+json error responses.
package problem

import (
	"encoding/json"
	"net/http"
)

const (
	ContentType = "application/problem+json"
	BaseURI     = "http://localhost:8080/problems"
)

// Problem types returned by the API.
const (
	TypeNotFound           = "not-found"
	TypeBadRequest         = "bad-request"
	TypeValidation         = "validation-error"
	TypeConflict           = "conflict"
	TypeModuleDisabled     = "module-disabled"
	TypeServiceUnavailable = "service-unavailable"
	TypeUpstream           = "llm-error"
	TypeInternal           = "internal-error"
)

// Problem represents an RFC 9457 problem+json response
type Problem struct {
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	Status   int          `json:"status"`
	Detail   string       `json:"detail,omitempty"`
	Instance string       `json:"instance,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Problem
func New(status int, problemType, title, detail string) *Problem {
	return &Problem{
		Type:   BaseURI + "/" + problemType,
		Title:  title,
		Status: status,
		Detail: detail,
	}
}

// WithErrors adds field errors to the problem
func (p *Problem) WithErrors(errors []FieldError) *Problem {
	p.Errors = errors
	return p
}

// WithInstance sets the URI of the request that failed.
func (p *Problem) WithInstance(instance string) *Problem {
	p.Instance = instance
	return p
}

// Write writes the problem to the response
func (p *Problem) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func NotFound(detail string) *Problem {
	return New(http.StatusNotFound, TypeNotFound, "Not Found", detail)
}

func BadRequest(detail string) *Problem {
	return New(http.StatusBadRequest, TypeBadRequest, "Bad Request", detail)
}

func ValidationError(detail string, errors []FieldError) *Problem {
	return New(http.StatusUnprocessableEntity, TypeValidation, "Validation Error", detail).WithErrors(errors)
}

func Conflict(detail string) *Problem {
	return New(http.StatusConflict, TypeConflict, "Conflict", detail)
}

// ModuleDisabled is returned when an analysis needs a tracker module the user
// switched off.
func ModuleDisabled(detail string) *Problem {
	return New(http.StatusConflict, TypeModuleDisabled, "Module Disabled", detail)
}

func ServiceUnavailable(detail string) *Problem {
	return New(http.StatusServiceUnavailable, TypeServiceUnavailable, "Service Unavailable", detail)
}

// BadGateway reports a failed call to the LLM provider.
func BadGateway(detail string) *Problem {
	return New(http.StatusBadGateway, TypeUpstream, "LLM Error", detail)
}

func InternalError(detail string) *Problem {
	return New(http.StatusInternalServerError, TypeInternal, "Internal Server Error", detail)
}
