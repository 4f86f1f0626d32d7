package portfolio

import "time"

type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

type Project struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	GitHub       string    `json:"github"`
	Technologies []string  `json:"technologies"`
	Category     string    `json:"category"`
	CreatedAt    time.Time `json:"created_at"`
}

type Experience struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Duration     string    `json:"duration"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	CreatedAt    time.Time `json:"created_at"`
}

// Portfolio is the single aggregate document served by the API.
type Portfolio struct {
	ID         string       `json:"id"`
	Personal   PersonalInfo `json:"personal"`
	Projects   []Project    `json:"projects"`
	Experience []Experience `json:"experience"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Stamp assigns the identifier and all unset timestamps. Timestamps that are
// already set are left alone.
func (p *Portfolio) Stamp(id string, now time.Time) {
	now = now.UTC()
	if p.ID == "" {
		p.ID = id
	}
	for i := range p.Projects {
		if p.Projects[i].CreatedAt.IsZero() {
			p.Projects[i].CreatedAt = now
		}
	}
	for i := range p.Experience {
		if p.Experience[i].CreatedAt.IsZero() {
			p.Experience[i].CreatedAt = now
		}
	}
	p.UpdatedAt = now
}

type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}

type ContactMessageInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
