package domain

// Project categories used by the portfolio filter.
const (
	CategoryResidential = "residential"
	CategoryCommercial  = "commercial"
	CategoryRenovation  = "renovation"
)

// Project is a portfolio entry shown on the Projects page.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Style       string   `json:"style,omitempty"`
	Location    string   `json:"location,omitempty"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
	Featured    bool     `json:"featured"`
	CompletedAt string   `json:"completedAt,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// ProjectInput is the payload for creating or updating a project.
type ProjectInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Style       string   `json:"style,omitempty"`
	Location    string   `json:"location,omitempty"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
	Featured    bool     `json:"featured"`
	CompletedAt string   `json:"completedAt,omitempty"`
}

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	Category string
	Featured *bool
	Page     int
	PageSize int
}

// ValidCategory reports whether c is one of the known project categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryResidential, CategoryCommercial, CategoryRenovation:
		return true
	}
	return false
}
