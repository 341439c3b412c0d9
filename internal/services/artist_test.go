package services

import (
	"encoding/json"
	"testing"

	"artloop/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockArtistRepository struct {
	artists map[string]*models.Artist
}

func newMockArtistRepository() *mockArtistRepository {
	return &mockArtistRepository{artists: make(map[string]*models.Artist)}
}

func (m *mockArtistRepository) Create(artist *models.Artist) error {
	m.artists[artist.ID] = artist
	return nil
}

func (m *mockArtistRepository) GetByID(id string) (*models.Artist, error) {
	artist, exists := m.artists[id]
	if !exists {
		return nil, models.ErrArtistNotFound
	}
	return artist, nil
}

func (m *mockArtistRepository) GetAll(status models.ArtistStatus) ([]*models.Artist, error) {
	var result []*models.Artist
	for _, a := range m.artists {
		if status == "" || a.Status == status {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockArtistRepository) Search(term string) ([]*models.Artist, error) {
	return nil, nil
}

func (m *mockArtistRepository) Update(artist *models.Artist) error {
	if _, exists := m.artists[artist.ID]; !exists {
		return models.ErrArtistNotFound
	}
	m.artists[artist.ID] = artist
	return nil
}

func (m *mockArtistRepository) SoftDelete(id string) error {
	artist, exists := m.artists[id]
	if !exists {
		return models.ErrArtistNotFound
	}
	artist.Status = models.ArtistInactive
	return nil
}

func TestArtistCreate(t *testing.T) {
	repo := newMockArtistRepository()
	svc := NewArtistService(repo)

	artist, err := svc.Create(&models.ArtistCreateRequest{
		Name:    "Nia Soul",
		Bio:     "Vocalist and songwriter",
		Talents: []string{"vocals", "songwriting"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, artist.ID)
	assert.Equal(t, models.ArtistActive, artist.Status)
	assert.Equal(t, "nia-soul", artist.Slug)
}

func TestArtistCreateKeepsExplicitSlug(t *testing.T) {
	svc := NewArtistService(newMockArtistRepository())

	artist, err := svc.Create(&models.ArtistCreateRequest{
		Name: "Nia Soul",
		Slug: "nia",
		Bio:  "Vocalist",
	})
	require.NoError(t, err)
	assert.Equal(t, "nia", artist.Slug)
}

func TestArtistCreateValidation(t *testing.T) {
	repo := newMockArtistRepository()
	svc := NewArtistService(repo)

	_, err := svc.Create(&models.ArtistCreateRequest{Name: "Nia Soul"})
	require.Error(t, err)
	assert.True(t, models.IsValidationError(err))
	assert.Contains(t, err.Error(), "bio")
	assert.Empty(t, repo.artists)
}

func TestArtistUpdateMergesFields(t *testing.T) {
	repo := newMockArtistRepository()
	svc := NewArtistService(repo)

	artist, err := svc.Create(&models.ArtistCreateRequest{Name: "Nia Soul", Bio: "Vocalist"})
	require.NoError(t, err)

	updated, err := svc.Update(artist.ID, json.RawMessage(`{"location":"Nairobi","featured":true}`))
	require.NoError(t, err)
	assert.Equal(t, "Nairobi", updated.Location)
	assert.True(t, updated.Featured)
	assert.Equal(t, "Nia Soul", updated.Name)
}

func TestArtistDeleteIsSoft(t *testing.T) {
	repo := newMockArtistRepository()
	svc := NewArtistService(repo)

	artist, err := svc.Create(&models.ArtistCreateRequest{Name: "Nia Soul", Bio: "Vocalist"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(artist.ID))

	stored, err := repo.GetByID(artist.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ArtistInactive, stored.Status)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Nia Soul", "nia-soul"},
		{"  The  Quartet  ", "the-quartet"},
		{"DJ", "dj"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.in))
	}
}
