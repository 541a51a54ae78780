package generator

import "time"

// Projections keep the handful of fields later stages read, never whole rows.

type OrgRef struct {
	ID        string
	Domain    string
	CreatedAt time.Time
}

type TeamRef struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type UserRef struct {
	ID        string
	Name      string
	Teams     []string
	CreatedAt time.Time
}

type ProjectRef struct {
	ID        string
	TeamID    string
	CreatedAt time.Time
}

type SectionRef struct {
	ID        string
	ProjectID string
	Position  int
}

type TaskRef struct {
	ID         string
	ProjectID  string
	AssigneeID string
	CreatedAt  time.Time
	Completed  bool
}

type TagRef struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type FieldRef struct {
	ID        string
	ProjectID string
	Name      string
	Type      string
	CreatedAt time.Time
}
