package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateArticleInput_Valid(t *testing.T) {
	err := ValidateArticleInput("Octopus Intelligence", "Octopuses are remarkable problem solvers.")
	assert.NoError(t, err)
}

func TestValidateArticleInput_MissingTitle(t *testing.T) {
	err := ValidateArticleInput("   ", "content")
	assert.Equal(t, ErrMissingTitle, err)
}

func TestValidateArticleInput_MissingContent(t *testing.T) {
	err := ValidateArticleInput("title", "")
	assert.Equal(t, ErrMissingContent, err)
}

func TestValidateArticleInput_TitleTooLong(t *testing.T) {
	err := ValidateArticleInput(strings.Repeat("x", MaxTitleLength+1), "content")
	assert.Equal(t, ErrTitleTooLong, err)
}

func TestValidateEmbeddingJob(t *testing.T) {
	job := &EmbeddingJob{
		ID:        "job-1",
		ArticleID: 42,
		Status:    EmbeddingJobStatusPending,
	}
	assert.NoError(t, ValidateEmbeddingJob(job))

	job.ArticleID = 0
	assert.Error(t, ValidateEmbeddingJob(job))

	job.ArticleID = 42
	job.Status = "bogus"
	assert.Error(t, ValidateEmbeddingJob(job))
}

func TestDomainError_Error(t *testing.T) {
	err := NewDomainError(ErrCodeGeneration, "text generation failed")
	assert.Equal(t, "[GENERATION_ERROR] text generation failed", err.Error())

	wrapped := NewDomainErrorWithCause(ErrCodeSynthesis, "synthesis failed", assert.AnError)
	assert.Contains(t, wrapped.Error(), "SYNTHESIS_ERROR")
	assert.Equal(t, assert.AnError, wrapped.Unwrap())
}
