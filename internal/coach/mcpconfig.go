package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jfenske89/stride/internal/apperr"
)

// GetMCPConfig returns the raw mcp-config.json contents. A missing file
// is a valid empty configuration.
func (s *Service) GetMCPConfig(_ context.Context) (json.RawMessage, error) {
	data, err := s.store.Read(mcpConfigPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return json.RawMessage("{}"), nil
		}
		return nil, err
	}
	return json.RawMessage(data), nil
}

// PutMCPConfig replaces mcp-config.json. The payload is stored verbatim
// but must be valid JSON.
func (s *Service) PutMCPConfig(_ context.Context, raw json.RawMessage) error {
	if !json.Valid(raw) {
		return fmt.Errorf("%w: body is not valid JSON", apperr.ErrValidation)
	}
	return s.store.Write(mcpConfigPath, raw)
}
