package profile

import (
	"encoding/json"
	"fmt"
	"os"

	"digitaltwin/internal/domain"
)

// Load reads and decodes the profile document at path. A missing file or a
// document that is not a JSON object is fatal for the bulk-load path; missing
// sections and fields inside an otherwise well-formed document are not.
func Load(path string) (*domain.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %s: %w", path, err, domain.ErrChunking)
	}
	return Decode(data)
}

// Decode parses a profile document from raw JSON.
func Decode(data []byte) (*domain.Profile, error) {
	var p domain.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %s: %w", err, domain.ErrChunking)
	}
	return &p, nil
}
