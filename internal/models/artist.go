package models

import "time"

// ArtistStatus represents the status of an artist profile
type ArtistStatus string

const (
	ArtistActive   ArtistStatus = "active"
	ArtistInactive ArtistStatus = "inactive"
)

// Artist represents a performer profile in the marketplace. Soft deleted by
// setting status to inactive.
type Artist struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Slug         string            `json:"slug"`
	Image        string            `json:"image,omitempty"`
	Talents      []string          `json:"talents,omitempty"`
	Bio          string            `json:"bio,omitempty"`
	FullBio      string            `json:"fullBio,omitempty"`
	Location     string            `json:"location,omitempty"`
	Rating       float64           `json:"rating"`
	TotalReviews int               `json:"totalReviews"`
	PriceRange   string            `json:"priceRange,omitempty"`
	Availability string            `json:"availability,omitempty"`
	SocialLinks  map[string]string `json:"socialLinks,omitempty"`
	Featured     bool              `json:"featured"`
	Status       ArtistStatus      `json:"status"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// ArtistCreateRequest represents the data needed to create an artist profile
type ArtistCreateRequest struct {
	Name         string            `json:"name"`
	Slug         string            `json:"slug"`
	Image        string            `json:"image"`
	Talents      []string          `json:"talents"`
	Bio          string            `json:"bio"`
	FullBio      string            `json:"fullBio"`
	Location     string            `json:"location"`
	Rating       float64           `json:"rating"`
	TotalReviews int               `json:"totalReviews"`
	PriceRange   string            `json:"priceRange"`
	Availability string            `json:"availability"`
	SocialLinks  map[string]string `json:"socialLinks"`
	Featured     bool              `json:"featured"`
}

// Validate checks the required artist fields
func (r *ArtistCreateRequest) Validate() error {
	var missing []string
	if r.Name == "" {
		missing = append(missing, "name")
	}
	if r.Bio == "" {
		missing = append(missing, "bio")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
