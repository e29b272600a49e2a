package coach

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/jfenske89/stride/internal/apperr"
	"github.com/jfenske89/stride/internal/models"
	"github.com/jfenske89/stride/internal/record"
)

// GetResolution parses the per-profile resolution record. There is no
// registry for resolutions; every read parses the markdown, and a missing
// file is a valid empty resolution.
func (s *Service) GetResolution(_ context.Context, profileID string) (*models.Resolution, error) {
	if !s.store.Exists(profilePath(profileID)) {
		return nil, apperr.ErrNotFound
	}
	data, err := s.store.Read(resolutionPath(profileID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &models.Resolution{Goals: []record.ChecklistItem{}}, nil
		}
		return nil, err
	}

	doc := string(data)
	fields := record.Fields(data)
	res := &models.Resolution{
		Statement: fields["statement"],
		Year:      record.Int(doc, "Year"),
		Goals:     []record.ChecklistItem{},
	}
	_, sections := record.Sections(doc)
	for _, sec := range sections {
		if sec.Header == "Goals" {
			res.Goals = record.Checklist(sec.Body)
			break
		}
	}
	return res, nil
}

// PutResolution replaces the resolution record wholesale.
func (s *Service) PutResolution(_ context.Context, profileID string, res models.Resolution) (*models.Resolution, error) {
	if !s.store.Exists(profilePath(profileID)) {
		return nil, apperr.ErrNotFound
	}
	if res.Goals == nil {
		res.Goals = []record.ChecklistItem{}
	}

	doc := record.New("Resolution",
		record.Pair{Label: "Statement", Value: res.Statement},
		record.Pair{Label: "Year", Value: strconv.Itoa(res.Year)},
		record.Pair{Label: "Last Modified", Value: time.Now().Format("2006-01-02")},
	)
	doc = record.EnsureSection(doc, "Goals")
	doc = record.ReplaceSection(doc, "Goals", res.Goals)

	if err := s.writeRecord(resolutionPath(profileID), doc); err != nil {
		return nil, err
	}
	return &res, nil
}
