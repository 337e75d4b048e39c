package service

import (
	"context"
	"fmt"
	"log"

	"appraisals/internal/bank"
	"appraisals/internal/model"
	"appraisals/internal/repository"
)

// SyncService reconciles the question index with the question bank at
// startup. The cache-validity rule is role-set membership: the index is
// current iff the set of roles it holds equals the set of roles in the bank.
// Any difference wipes and rebuilds the whole collection; the bank is small
// enough that incremental diffing is not worth the complexity.
type SyncService struct {
	bank bank.Bank
	repo repository.QuestionRepo
}

// NewSyncService creates a new sync service.
func NewSyncService(b bank.Bank, repo repository.QuestionRepo) *SyncService {
	return &SyncService{
		bank: b,
		repo: repo,
	}
}

// Reconcile brings the index in line with the bank. It is idempotent: a
// second call with an unchanged bank performs no writes.
func (s *SyncService) Reconcile(ctx context.Context) error {
	rolesInDB, err := s.repo.DistinctRoles(ctx)
	if err != nil {
		return fmt.Errorf("read index roles: %w", err)
	}

	if !sameRoleSet(rolesInDB, s.bank.Roles()) {
		log.Println("Question bank roles mismatch detected, rebuilding index...")
		if err := s.repo.Drop(ctx); err != nil {
			return fmt.Errorf("drop index: %w", err)
		}
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count index entries: %w", err)
	}
	if count > 0 {
		log.Println("Question index is up to date")
		return nil
	}

	entries := make([]model.IndexEntry, 0, s.bank.TotalQuestions())
	for _, role := range s.bank.Roles() {
		for i, q := range s.bank.Questions(role) {
			entries = append(entries, model.NewIndexEntry(role, i, q))
		}
	}
	if len(entries) == 0 {
		log.Println("Question bank is empty, nothing to index")
		return nil
	}

	if err := s.repo.InsertAll(ctx, entries); err != nil {
		return fmt.Errorf("populate index: %w", err)
	}

	log.Printf("Indexed %d questions across %d roles", len(entries), len(s.bank))
	return nil
}

func sameRoleSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, role := range a {
		seen[role] = true
	}
	for _, role := range b {
		if !seen[role] {
			return false
		}
	}
	return true
}
