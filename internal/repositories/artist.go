package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"artloop/internal/models"
)

// ArtistRepository handles artist profile data operations
type ArtistRepository struct {
	db *sql.DB
}

// NewArtistRepository creates a new artist repository
func NewArtistRepository(db *sql.DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

const artistColumns = `id, name, slug, image, talents, bio, full_bio, location, rating,
	total_reviews, price_range, availability, social_links, featured, status,
	created_at, updated_at`

// Create persists a new artist profile
func (r *ArtistRepository) Create(artist *models.Artist) error {
	talents, socialLinks, err := encodeArtistJSON(artist)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO artists (` + artistColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err = r.db.Exec(
		query,
		artist.ID,
		artist.Name,
		artist.Slug,
		artist.Image,
		talents,
		artist.Bio,
		artist.FullBio,
		artist.Location,
		artist.Rating,
		artist.TotalReviews,
		artist.PriceRange,
		artist.Availability,
		socialLinks,
		artist.Featured,
		artist.Status,
		artist.CreatedAt,
		artist.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create artist: %w", err)
	}

	return nil
}

// GetByID retrieves an artist by ID
func (r *ArtistRepository) GetByID(id string) (*models.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists WHERE id = $1`

	artist, err := scanArtist(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrArtistNotFound
		}
		return nil, fmt.Errorf("failed to get artist: %w", err)
	}

	return artist, nil
}

// GetAll returns all artists with the given status, featured first
func (r *ArtistRepository) GetAll(status models.ArtistStatus) ([]*models.Artist, error) {
	if status == "" {
		status = models.ArtistActive
	}

	query := `SELECT ` + artistColumns + ` FROM artists
		WHERE status = $1 ORDER BY featured DESC, name ASC`

	return r.queryArtists(query, status)
}

// Search finds active artists whose name, location or talents match the term
func (r *ArtistRepository) Search(term string) ([]*models.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists
		WHERE status = $1 AND (
			name ILIKE $2 OR location ILIKE $2 OR bio ILIKE $2 OR talents::text ILIKE $2
		) ORDER BY featured DESC, name ASC`

	return r.queryArtists(query, models.ArtistActive, "%"+term+"%")
}

// Update writes back a merged artist document
func (r *ArtistRepository) Update(artist *models.Artist) error {
	talents, socialLinks, err := encodeArtistJSON(artist)
	if err != nil {
		return err
	}

	query := `
		UPDATE artists SET
			name = $2, slug = $3, image = $4, talents = $5, bio = $6, full_bio = $7,
			location = $8, rating = $9, total_reviews = $10, price_range = $11,
			availability = $12, social_links = $13, featured = $14, status = $15,
			updated_at = $16
		WHERE id = $1`

	result, err := r.db.Exec(
		query,
		artist.ID,
		artist.Name,
		artist.Slug,
		artist.Image,
		talents,
		artist.Bio,
		artist.FullBio,
		artist.Location,
		artist.Rating,
		artist.TotalReviews,
		artist.PriceRange,
		artist.Availability,
		socialLinks,
		artist.Featured,
		artist.Status,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update artist: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return models.ErrArtistNotFound
	}

	return nil
}

// SoftDelete marks an artist as inactive without removing the profile
func (r *ArtistRepository) SoftDelete(id string) error {
	query := `UPDATE artists SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(query, id, models.ArtistInactive, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete artist: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return models.ErrArtistNotFound
	}

	return nil
}

func (r *ArtistRepository) queryArtists(query string, args ...interface{}) ([]*models.Artist, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	var artists []*models.Artist
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		artists = append(artists, artist)
	}

	return artists, rows.Err()
}

func encodeArtistJSON(artist *models.Artist) ([]byte, []byte, error) {
	talents, err := json.Marshal(artist.Talents)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode talents: %w", err)
	}
	socialLinks, err := json.Marshal(artist.SocialLinks)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode social links: %w", err)
	}
	return talents, socialLinks, nil
}

func scanArtist(s scanner) (*models.Artist, error) {
	artist := &models.Artist{}
	var talents, socialLinks []byte

	err := s.Scan(
		&artist.ID,
		&artist.Name,
		&artist.Slug,
		&artist.Image,
		&talents,
		&artist.Bio,
		&artist.FullBio,
		&artist.Location,
		&artist.Rating,
		&artist.TotalReviews,
		&artist.PriceRange,
		&artist.Availability,
		&socialLinks,
		&artist.Featured,
		&artist.Status,
		&artist.CreatedAt,
		&artist.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(talents) > 0 {
		if err := json.Unmarshal(talents, &artist.Talents); err != nil {
			return nil, fmt.Errorf("failed to decode talents: %w", err)
		}
	}
	if len(socialLinks) > 0 {
		if err := json.Unmarshal(socialLinks, &artist.SocialLinks); err != nil {
			return nil, fmt.Errorf("failed to decode social links: %w", err)
		}
	}

	return artist, nil
}
