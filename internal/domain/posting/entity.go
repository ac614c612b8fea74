package posting

type Education struct {
	ID          int64
	Description string
}

type Sector struct {
	ID          int64
	Name        string
	Description string
}

type Skill struct {
	ID          int64
	Description string
}

type Location struct {
	ID          int64
	Description string
	State       string
}

// Posting is an immutable opportunity record owned by the data layer.
// Sector, Location, Education and SkillText carry the resolved
// descriptive text of the related entities so the scoring engine never
// has to reach back into storage.
type Posting struct {
	ID          int64
	Title       string
	Description string
	CompanyName string
	Sector      string
	Location    string
	Education   string
	SkillText   string
	Duration    string
	Details     string
	Posts       int
}
