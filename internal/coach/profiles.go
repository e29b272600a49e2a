package coach

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jfenske89/stride/internal/apperr"
	"github.com/jfenske89/stride/internal/models"
	"github.com/jfenske89/stride/internal/record"
)

// ProfileUpdate carries optional field changes for a profile. Nil fields
// are left untouched.
type ProfileUpdate struct {
	Name               *string
	Email              *string
	OnboardingComplete *bool
}

// CreateProfile creates a new profile. The first profile ever created
// becomes the owner.
func (s *Service) CreateProfile(_ context.Context, name, email string) (*models.Profile, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrValidation)
	}

	existing, err := s.store.ListDirs("profiles")
	if err != nil {
		return nil, err
	}

	p := &models.Profile{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Owner:     len(existing) == 0,
		CreatedAt: time.Now().UTC(),
	}

	doc := record.New("Profile: "+p.Name,
		record.Pair{Label: "ID", Value: p.ID},
		record.Pair{Label: "Name", Value: p.Name},
		record.Pair{Label: "Email", Value: p.Email},
		record.Pair{Label: "Owner", Value: strconv.FormatBool(p.Owner)},
		record.Pair{Label: "Onboarding Complete", Value: "false"},
		record.Pair{Label: "Created", Value: p.CreatedAt.Format(time.RFC3339)},
		record.Pair{Label: "Last Modified", Value: time.Now().Format("2006-01-02")},
	)
	if err := s.writeRecord(profilePath(p.ID), doc); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProfile loads one profile by id.
func (s *Service) GetProfile(_ context.Context, id string) (*models.Profile, error) {
	data, err := s.store.Read(profilePath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return profileFromDoc(id, data), nil
}

// ListProfiles scans the profiles directory and parses each record.
// Profiles have no registry mirror; markdown is the only source of truth.
func (s *Service) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	dirs, err := s.store.ListDirs("profiles")
	if err != nil {
		return nil, err
	}
	out := make([]models.Profile, 0, len(dirs))
	for _, id := range dirs {
		p, err := s.GetProfile(ctx, id)
		if err != nil {
			s.logger.Warn("skipping unreadable profile", slog.String("id", id), slog.String("error", err.Error()))
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

// UpdateProfile applies a partial update to the profile record.
func (s *Service) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*models.Profile, error) {
	data, err := s.store.Read(profilePath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	var pairs []record.Pair
	if upd.Name != nil {
		pairs = append(pairs, record.Pair{Label: "Name", Value: *upd.Name})
	}
	if upd.Email != nil {
		pairs = append(pairs, record.Pair{Label: "Email", Value: *upd.Email})
	}
	if upd.OnboardingComplete != nil {
		pairs = append(pairs, record.Pair{Label: "Onboarding Complete", Value: strconv.FormatBool(*upd.OnboardingComplete)})
	}

	doc := record.Update(string(data), pairs...)
	if err := s.writeRecord(profilePath(id), doc); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, id)
}

// DeleteProfile removes a profile directory and everything in it. The
// owner profile can never be deleted, and only the owner may delete other
// profiles.
func (s *Service) DeleteProfile(ctx context.Context, id, requesterID string) error {
	target, err := s.GetProfile(ctx, id)
	if err != nil {
		return err
	}
	if target.Owner {
		return fmt.Errorf("%w: the owner profile cannot be deleted", apperr.ErrForbidden)
	}

	requester, err := s.GetProfile(ctx, requesterID)
	if err != nil || !requester.Owner {
		return fmt.Errorf("%w: only the owner may delete profiles", apperr.ErrForbidden)
	}

	if err := s.store.RemoveAll(profileDir(id)); err != nil {
		return err
	}
	s.dropIndexed(profilePath(id), resolutionPath(id))
	return nil
}

// DaysSinceOwnerCreated returns whole days elapsed since the owner profile
// was created; 0 when no owner exists yet. Skill unlock gating keys off
// this value.
func (s *Service) DaysSinceOwnerCreated(ctx context.Context) int {
	profiles, err := s.ListProfiles(ctx)
	if err != nil {
		return 0
	}
	for _, p := range profiles {
		if p.Owner && !p.CreatedAt.IsZero() {
			return int(time.Since(p.CreatedAt).Hours() / 24)
		}
	}
	return 0
}

func profileFromDoc(id string, data []byte) *models.Profile {
	fields := record.Fields(data)
	p := &models.Profile{
		ID:                 fields["id"],
		Name:               fields["name"],
		Email:              fields["email"],
		Owner:              fields["owner"] == "true",
		OnboardingComplete: fields["onboarding_complete"] == "true",
	}
	if p.ID == "" {
		p.ID = id
	}
	if ts, err := time.Parse(time.RFC3339, fields["created"]); err == nil {
		p.CreatedAt = ts
	}
	return p
}
