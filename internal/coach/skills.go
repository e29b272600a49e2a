package coach

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jfenske89/stride/internal/apperr"
	"github.com/jfenske89/stride/internal/models"
	"github.com/jfenske89/stride/internal/record"
	"github.com/jfenske89/stride/internal/storage"
)

var skillNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// skillFrontmatter is the YAML block at the top of SKILL.md.
type skillFrontmatter struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category,omitempty"`
	Triggers    []string `yaml:"triggers,omitempty"`
}

// CreateSkill writes SKILL.md (frontmatter + instructions) and the
// .skill-meta.json sidecar.
func (s *Service) CreateSkill(_ context.Context, sk models.Skill) (*models.Skill, error) {
	if !skillNameRe.MatchString(sk.Name) {
		return nil, fmt.Errorf("%w: skill name must be lowercase kebab-case", apperr.ErrValidation)
	}
	if s.store.Exists(skillPath(sk.Name)) {
		return nil, apperr.ErrAlreadyExists
	}

	fm, err := yaml.Marshal(skillFrontmatter{
		Name:        sk.Name,
		Description: sk.Description,
		Category:    sk.Category,
		Triggers:    sk.Triggers,
	})
	if err != nil {
		return nil, fmt.Errorf("encode skill frontmatter: %w", err)
	}

	doc := "---\n" + string(fm) + "---\n\n" + strings.TrimLeft(sk.Instructions, "\n")
	if !strings.HasSuffix(doc, "\n") {
		doc += "\n"
	}
	if err := s.writeRecord(skillPath(sk.Name), doc); err != nil {
		return nil, err
	}
	if err := storage.WriteJSON(s.store, skillMetaPath(sk.Name), sk.Meta); err != nil {
		// The skill file is already live; the sidecar only gates reveal.
		s.logger.Warn("skill meta write failed", slog.String("skill", sk.Name), slog.String("error", err.Error()))
	}
	sk.Locked = false
	return &sk, nil
}

// GetSkill loads a skill. currentDay gates the reveal: a skill whose
// unlock day is still ahead comes back locked with instructions withheld.
func (s *Service) GetSkill(_ context.Context, name string, currentDay int) (*models.Skill, error) {
	data, err := s.store.Read(skillPath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	fmRaw, body := record.SplitFrontmatter(data)
	sk := &models.Skill{Name: name, Instructions: body}
	if fmRaw != nil {
		if v, ok := fmRaw["name"].(string); ok && v != "" {
			sk.Name = v
		}
		if v, ok := fmRaw["description"].(string); ok {
			sk.Description = v
		}
		if v, ok := fmRaw["category"].(string); ok {
			sk.Category = v
		}
		if list, ok := fmRaw["triggers"].([]any); ok {
			for _, item := range list {
				if t, ok := item.(string); ok {
					sk.Triggers = append(sk.Triggers, t)
				}
			}
		}
	}

	// Missing sidecar means no gating.
	if err := storage.ReadJSON(s.store, skillMetaPath(name), &sk.Meta); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("skill meta read failed", slog.String("skill", name), slog.String("error", err.Error()))
	}

	if sk.Meta.UnlockDay > currentDay {
		sk.Locked = true
		sk.Instructions = ""
		sk.Triggers = nil
	}
	return sk, nil
}

// ListSkills returns every skill, locked ones included (with instructions
// withheld), so list views can show upcoming unlocks.
func (s *Service) ListSkills(ctx context.Context, currentDay int) ([]models.Skill, error) {
	dirs, err := s.store.ListDirs("skills")
	if err != nil {
		return nil, err
	}
	out := make([]models.Skill, 0, len(dirs))
	for _, name := range dirs {
		sk, err := s.GetSkill(ctx, name, currentDay)
		if err != nil {
			s.logger.Warn("skipping unreadable skill", slog.String("skill", name), slog.String("error", err.Error()))
			continue
		}
		out = append(out, *sk)
	}
	return out, nil
}

// DeleteSkill removes the skill directory.
func (s *Service) DeleteSkill(ctx context.Context, name string) error {
	if !s.store.Exists(skillPath(name)) {
		return apperr.ErrNotFound
	}
	if err := s.store.RemoveAll(skillDir(name)); err != nil {
		return err
	}
	s.dropIndexed(skillPath(name))
	return nil
}
