package portfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound          = errors.New("portfolio not found")
	ErrMalformedDocument = errors.New("malformed document")
)

// DecodePortfolio turns a stored document into a Portfolio. Any missing
// required field fails the whole decode.
func DecodePortfolio(raw []byte) (Portfolio, error) {
	var p Portfolio
	if err := json.Unmarshal(raw, &p); err != nil {
		return Portfolio{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	var missing []string
	if strings.TrimSpace(p.ID) == "" {
		missing = append(missing, "id")
	}
	if strings.TrimSpace(p.Personal.Name) == "" {
		missing = append(missing, "personal.name")
	}
	if p.Projects == nil {
		missing = append(missing, "projects")
	}
	if p.Experience == nil {
		missing = append(missing, "experience")
	}
	if p.UpdatedAt.IsZero() {
		missing = append(missing, "updated_at")
	}
	for i, pr := range p.Projects {
		if strings.TrimSpace(pr.Title) == "" {
			missing = append(missing, fmt.Sprintf("projects[%d].title", i))
		}
		if pr.CreatedAt.IsZero() {
			missing = append(missing, fmt.Sprintf("projects[%d].created_at", i))
		}
	}
	for i, ex := range p.Experience {
		if strings.TrimSpace(ex.Title) == "" {
			missing = append(missing, fmt.Sprintf("experience[%d].title", i))
		}
		if ex.CreatedAt.IsZero() {
			missing = append(missing, fmt.Sprintf("experience[%d].created_at", i))
		}
	}

	if len(missing) > 0 {
		return Portfolio{}, fmt.Errorf("%w: missing %s", ErrMalformedDocument, strings.Join(missing, ", "))
	}
	return p, nil
}

func DecodeContactMessage(raw []byte) (ContactMessage, error) {
	var m ContactMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return ContactMessage{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	// Visitor fields may be empty strings but must be present.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ContactMessage{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	var missing []string
	if strings.TrimSpace(m.ID) == "" {
		missing = append(missing, "id")
	}
	for _, key := range []string{"name", "email", "message"} {
		if v, ok := fields[key]; !ok || string(v) == "null" {
			missing = append(missing, key)
		}
	}
	if m.CreatedAt.IsZero() {
		missing = append(missing, "created_at")
	}

	if len(missing) > 0 {
		return ContactMessage{}, fmt.Errorf("%w: missing %s", ErrMalformedDocument, strings.Join(missing, ", "))
	}
	return m, nil
}
