package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"artloop/internal/models"

	"github.com/google/uuid"
)

// ArtistService handles artist profile management
type ArtistService struct {
	artists ArtistRepositoryInterface
}

// NewArtistService creates a new artist service
func NewArtistService(artists ArtistRepositoryInterface) *ArtistService {
	return &ArtistService{artists: artists}
}

// Create validates and persists a new artist profile
func (s *ArtistService) Create(req *models.ArtistCreateRequest) (*models.Artist, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	artist := &models.Artist{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Slug:         req.Slug,
		Image:        req.Image,
		Talents:      req.Talents,
		Bio:          req.Bio,
		FullBio:      req.FullBio,
		Location:     req.Location,
		Rating:       req.Rating,
		TotalReviews: req.TotalReviews,
		PriceRange:   req.PriceRange,
		Availability: req.Availability,
		SocialLinks:  req.SocialLinks,
		Featured:     req.Featured,
		Status:       models.ArtistActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if artist.Slug == "" {
		artist.Slug = slugify(artist.Name)
	}

	if err := s.artists.Create(artist); err != nil {
		return nil, err
	}

	return artist, nil
}

// GetByID retrieves an artist by ID
func (s *ArtistService) GetByID(id string) (*models.Artist, error) {
	return s.artists.GetByID(id)
}

// GetAll lists artists with the given status
func (s *ArtistService) GetAll(status models.ArtistStatus) ([]*models.Artist, error) {
	return s.artists.GetAll(status)
}

// Search finds active artists matching the term
func (s *ArtistService) Search(term string) ([]*models.Artist, error) {
	return s.artists.Search(term)
}

// Update merges the provided fields over the stored artist and writes it back
func (s *ArtistService) Update(id string, updates json.RawMessage) (*models.Artist, error) {
	artist, err := s.artists.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(updates, artist); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	artist.ID = id
	artist.UpdatedAt = time.Now()

	if err := s.artists.Update(artist); err != nil {
		return nil, err
	}

	return s.artists.GetByID(id)
}

// Delete soft-deletes an artist by marking the profile inactive
func (s *ArtistService) Delete(id string) error {
	return s.artists.SoftDelete(id)
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}
