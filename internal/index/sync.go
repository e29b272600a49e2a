package index

import (
	"log/slog"
	"strings"
	"time"

	"github.com/jfenske89/stride/internal/record"
	"github.com/jfenske89/stride/internal/storage"
)

// Sync walks the data tree and brings the index up to date:
//   - new/changed markdown files are parsed and upserted
//   - files removed from disk are deleted from the index
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := IndexFile(db, m.Path, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteRecord(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// IndexFile derives title/kind from a markdown record and upserts it.
// Exported so that the watcher and the services can reuse it.
func IndexFile(db *DB, path string, data []byte) error {
	return db.UpsertRecord(RecordRow{
		Path:      path,
		Kind:      KindOf(path),
		Title:     titleOf(data),
		Checksum:  storage.Checksum(data),
		UpdatedAt: time.Now(),
	}, string(data))
}

// KindOf derives the record kind from the first path segment of the data
// tree layout (profiles/, agents/, challenges/, skills/, contracts/, ...).
func KindOf(path string) string {
	if i := strings.IndexByte(path, '/'); i > 0 {
		return path[:i]
	}
	return ""
}

// titleOf returns the frontmatter name (skill files) or the first `# `
// heading, falling back to the Name/Title field line.
func titleOf(data []byte) string {
	if fm, _ := record.SplitFrontmatter(data); fm != nil {
		if s, ok := fm["name"].(string); ok && s != "" {
			return s
		}
	}
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	fields := record.Fields(data)
	if t := fields["title"]; t != "" {
		return t
	}
	return fields["name"]
}
