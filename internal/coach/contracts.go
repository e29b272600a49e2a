package coach

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jfenske89/stride/internal/apperr"
	"github.com/jfenske89/stride/internal/models"
	"github.com/jfenske89/stride/internal/record"
)

// CreateContract writes a commitment contract record.
func (s *Service) CreateContract(_ context.Context, c models.Contract) (*models.Contract, error) {
	if c.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}
	c.ID = uuid.NewString()
	c.Signed = false
	if c.Terms == nil {
		c.Terms = []string{}
	}

	doc := record.New("Contract: "+c.Title,
		record.Pair{Label: "ID", Value: c.ID},
		record.Pair{Label: "Title", Value: c.Title},
		record.Pair{Label: "Stakes", Value: c.Stakes},
		record.Pair{Label: "Deadline", Value: c.Deadline},
		record.Pair{Label: "Signed", Value: "false"},
		record.Pair{Label: "Last Modified", Value: time.Now().Format("2006-01-02")},
	)
	doc = record.EnsureSection(doc, "Terms")
	doc = record.ReplaceSection(doc, "Terms", c.Terms)

	if err := s.writeRecord(contractPath(c.ID), doc); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetContract parses one contract record.
func (s *Service) GetContract(_ context.Context, id string) (*models.Contract, error) {
	data, err := s.store.Read(contractPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return contractFromDoc(id, data), nil
}

// ListContracts scans the contracts directory.
func (s *Service) ListContracts(ctx context.Context) ([]models.Contract, error) {
	dirs, err := s.store.ListDirs("contracts")
	if err != nil {
		return nil, err
	}
	out := make([]models.Contract, 0, len(dirs))
	for _, id := range dirs {
		c, err := s.GetContract(ctx, id)
		if err != nil {
			s.logger.Warn("skipping unreadable contract", slog.String("id", id), slog.String("error", err.Error()))
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

// SignContract flips the signed flag. Signing is one-way: a signed
// contract cannot be unsigned.
func (s *Service) SignContract(ctx context.Context, id string) (*models.Contract, error) {
	data, err := s.store.Read(contractPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	doc := record.Update(string(data), record.Pair{Label: "Signed", Value: "true"})
	if err := s.writeRecord(contractPath(id), doc); err != nil {
		return nil, err
	}
	return s.GetContract(ctx, id)
}

// UpdateContractTerms replaces the `## Terms` list. Signed contracts are
// immutable.
func (s *Service) UpdateContractTerms(ctx context.Context, id string, terms []string) (*models.Contract, error) {
	c, err := s.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Signed {
		return nil, fmt.Errorf("%w: contract is signed", apperr.ErrConflict)
	}
	if terms == nil {
		terms = []string{}
	}

	data, err := s.store.Read(contractPath(id))
	if err != nil {
		return nil, err
	}
	doc := record.EnsureSection(string(data), "Terms")
	doc = record.ReplaceSection(doc, "Terms", terms)
	doc = record.Update(doc)

	if err := s.writeRecord(contractPath(id), doc); err != nil {
		return nil, err
	}
	return s.GetContract(ctx, id)
}

// DeleteContract removes the contract directory.
func (s *Service) DeleteContract(ctx context.Context, id string) error {
	if _, err := s.GetContract(ctx, id); err != nil {
		return err
	}
	if err := s.store.RemoveAll(contractDir(id)); err != nil {
		return err
	}
	s.dropIndexed(contractPath(id))
	return nil
}

func contractFromDoc(id string, data []byte) *models.Contract {
	fields := record.Fields(data)
	c := &models.Contract{
		ID:       fields["id"],
		Title:    fields["title"],
		Stakes:   fields["stakes"],
		Deadline: fields["deadline"],
		Signed:   fields["signed"] == "true",
		Terms:    []string{},
	}
	if c.ID == "" {
		c.ID = id
	}
	_, sections := record.Sections(string(data))
	for _, sec := range sections {
		if sec.Header == "Terms" {
			for _, line := range strings.Split(sec.Body, "\n") {
				line = strings.TrimSpace(line)
				if strings.HasPrefix(line, "- ") {
					c.Terms = append(c.Terms, strings.TrimSpace(line[2:]))
				}
			}
			break
		}
	}
	return c
}
