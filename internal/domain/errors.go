package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeInvalidOperation = "INVALID_OPERATION"
	ErrCodeGeneration       = "GENERATION_ERROR"
	ErrCodeSynthesis        = "SYNTHESIS_ERROR"
	ErrCodeEmbedding        = "EMBEDDING_ERROR"
)

// Validation errors
var (
	ErrMissingTitle              = NewDomainError(ErrCodeValidation, "title is required")
	ErrMissingContent            = NewDomainError(ErrCodeValidation, "content is required")
	ErrTitleTooLong              = NewDomainError(ErrCodeValidation, "title exceeds maximum length")
	ErrInvalidEmbeddingJobStatus = NewDomainError(ErrCodeValidation, "invalid embedding job status")
)

// Not found errors
var (
	ErrArticleNotFound        = NewDomainError(ErrCodeNotFound, "article not found")
	ErrPromptTemplateNotFound = NewDomainError(ErrCodeNotFound, "prompt template not found")
)

// Authorization errors
var (
	ErrInvalidCredentials = NewDomainError(ErrCodeUnauthorized, "invalid credentials")
)

// Pipeline errors. Generation and total-synthesis failures are the only
// fatal conditions; retrieval, template, and embedding failures degrade.
var (
	ErrGenerationFailed = NewDomainError(ErrCodeGeneration, "text generation failed")
	ErrNoAPICredentials = NewDomainError(ErrCodeGeneration, "model API credentials are not configured")
	ErrSynthesisFailed  = NewDomainError(ErrCodeSynthesis, "audio synthesis failed for every chunk")
	ErrEmbeddingFailed  = NewDomainError(ErrCodeEmbedding, "embedding generation failed")
)
