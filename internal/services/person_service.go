package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alimgiray/persondir/internal/models"
	"github.com/alimgiray/persondir/internal/repositories"
)

// PersonService owns the person lifecycle rules: email uniqueness and
// not-found handling. It keeps no state between calls.
type PersonService struct {
	personRepo repositories.PersonStore
}

func NewPersonService(personRepo repositories.PersonStore) *PersonService {
	return &PersonService{
		personRepo: personRepo,
	}
}

// Create persists a new person. It fails with ErrDuplicateResource, without
// writing, when the email is already on file.
func (s *PersonService) Create(ctx context.Context, candidate *models.Person) (*models.Person, error) {
	if candidate == nil || strings.TrimSpace(candidate.Email) == "" {
		return nil, fmt.Errorf("email is required: %w", models.ErrInvalidInput)
	}

	var created *models.Person
	err := s.personRepo.WithTx(ctx, func(store repositories.PersonStore) error {
		if err := ensureEmailAvailable(ctx, store, candidate.Email, 0); err != nil {
			return err
		}

		transient := *candidate
		transient.ID = 0
		saved, err := store.Save(ctx, &transient)
		if err != nil {
			return err
		}
		created = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// FindAll returns every person. An empty directory yields an empty slice.
func (s *PersonService) FindAll(ctx context.Context) ([]*models.Person, error) {
	people, err := s.personRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if people == nil {
		people = []*models.Person{}
	}
	return people, nil
}

// FindByID retrieves a person by ID
func (s *PersonService) FindByID(ctx context.Context, id int64) (*models.Person, error) {
	return s.personRepo.FindByID(ctx, id)
}

// Update replaces every mutable field of an existing person. The existence
// check runs before any write.
func (s *PersonService) Update(ctx context.Context, candidate *models.Person) (*models.Person, error) {
	if candidate == nil {
		return nil, fmt.Errorf("person is required: %w", models.ErrInvalidInput)
	}
	if !candidate.IsPersisted() {
		return nil, fmt.Errorf("person without id: %w", models.ErrNotFound)
	}

	var updated *models.Person
	err := s.personRepo.WithTx(ctx, func(store repositories.PersonStore) error {
		if _, err := store.FindByID(ctx, candidate.ID); err != nil {
			return err
		}
		if err := ensureEmailAvailable(ctx, store, candidate.Email, candidate.ID); err != nil {
			return err
		}

		saved, err := store.Save(ctx, candidate)
		if err != nil {
			return err
		}
		updated = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a person. Deleting an unknown ID fails with ErrNotFound.
func (s *PersonService) Delete(ctx context.Context, id int64) error {
	return s.personRepo.WithTx(ctx, func(store repositories.PersonStore) error {
		person, err := store.FindByID(ctx, id)
		if err != nil {
			return err
		}
		return store.DeleteByID(ctx, person.ID)
	})
}

// ensureEmailAvailable fails unless email is unused or owned by ownerID
func ensureEmailAvailable(ctx context.Context, store repositories.PersonStore, email string, ownerID int64) error {
	existing, err := store.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, models.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != ownerID:
		return fmt.Errorf("person with email %q already exists: %w", email, models.ErrDuplicateResource)
	default:
		return nil
	}
}
