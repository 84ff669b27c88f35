// Package inmem provides an in-memory roster.Repository for tests and
// DB-less command runs.
package inmem

import (
	"context"
	"sync"

	"github.com/lophoc/roster/core/roster"
)

type AccountRepository struct {
	mu      sync.Mutex
	batches []roster.Batch
}

var _ roster.Repository = (*AccountRepository)(nil)

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{}
}

// Seed registers identifiers as taken without storing a real batch.
func (repo *AccountRepository) Seed(usernames, displayNames []string) {
	batch := roster.Batch{}
	for i, uname := range usernames {
		rec := roster.StudentRecord{Username: uname}
		if i < len(displayNames) {
			rec.DisplayName = displayNames[i]
		}
		batch.Students = append(batch.Students, rec)
	}
	for i := len(usernames); i < len(displayNames); i++ {
		batch.Students = append(batch.Students, roster.StudentRecord{DisplayName: displayNames[i]})
	}
	repo.mu.Lock()
	repo.batches = append(repo.batches, batch)
	repo.mu.Unlock()
}

func (repo *AccountRepository) QueryUsedUsernames(context.Context) ([]string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var usernames []string
	for _, b := range repo.batches {
		for _, s := range b.Students {
			if s.Username != "" {
				usernames = append(usernames, s.Username)
			}
		}
		for _, t := range b.Teachers {
			usernames = append(usernames, t.Username)
		}
	}
	return usernames, nil
}

func (repo *AccountRepository) QueryUsedDisplayNames(context.Context) ([]string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var displayNames []string
	for _, b := range repo.batches {
		for _, s := range b.Students {
			if s.DisplayName != "" {
				displayNames = append(displayNames, s.DisplayName)
			}
		}
		for _, t := range b.Teachers {
			displayNames = append(displayNames, t.DisplayName)
		}
	}
	return displayNames, nil
}

func (repo *AccountRepository) SaveBatch(_ context.Context, batch roster.Batch) error {
	repo.mu.Lock()
	repo.batches = append(repo.batches, batch)
	repo.mu.Unlock()
	return nil
}

// Batches returns everything saved so far.
func (repo *AccountRepository) Batches() []roster.Batch {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	out := make([]roster.Batch, len(repo.batches))
	copy(out, repo.batches)
	return out
}
