package store

import (
	"fmt"
	"time"

	"github.com/abhii242004/applymail/internal/model"
)

// NopStore is a no-op store used with --no-save or when history is disabled.
// Drafts are never persisted.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) Save(email model.Email) (int64, error) { return 0, nil }
func (s *NopStore) List(limit int) ([]model.Email, error) { return nil, nil }
func (s *NopStore) Get(id int64) (model.Email, error) {
	return model.Email{}, fmt.Errorf("draft %d not found", id)
}
func (s *NopStore) Cleanup(olderThan time.Duration) error { return nil }
