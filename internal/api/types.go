package api

import (
	"github.com/socialpulse/postfilter/internal/models"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// FilterRequest is a batch of posts to partition.
type FilterRequest struct {
	Posts []models.Post `json:"posts"`
}

// FilterResponse carries both partitions; filtered posts come back annotated.
type FilterResponse struct {
	Passed   []models.Post `json:"passed"`
	Filtered []models.Post `json:"filtered"`
}

// CheckRequest wraps a single post for a rules-only check.
type CheckRequest struct {
	Post models.Post `json:"post"`
}
