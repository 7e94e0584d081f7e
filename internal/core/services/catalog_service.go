package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nova-library/internal/adapters/persistence/models"
	"nova-library/internal/adapters/persistence/repositories"
	"nova-library/internal/core/domain"

	"github.com/gosimple/slug"
)

// CatalogService serves the public collection
type CatalogService struct {
	inventory   repositories.InventoryRepository
	placeholder string
}

// NewCatalogService creates a new catalog service
func NewCatalogService(inventory repositories.InventoryRepository, placeholderCover string) *CatalogService {
	return &CatalogService{
		inventory:   inventory,
		placeholder: placeholderCover,
	}
}

// GenreGroup is one genre section of the gallery
type GenreGroup struct {
	Genre string         `json:"genre"`
	Slug  string         `json:"slug"`
	Books []*models.Book `json:"books"`
}

// CatalogView is the filtered, grouped collection
type CatalogView struct {
	Query  string       `json:"query"`
	Genre  string       `json:"genre"`
	Genres []string     `json:"genres"`
	Groups []GenreGroup `json:"groups"`
	Total  int          `json:"total"`
}

// Browse lists the collection filtered by a case-insensitive title/author
// substring and an exact genre, grouped by genre in first-seen order.
func (s *CatalogService) Browse(ctx context.Context, query, genre string) (*CatalogView, error) {
	books, err := s.inventory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}

	query = strings.TrimSpace(query)
	genre = strings.TrimSpace(genre)
	if genre == "" {
		genre = domain.AllCategories
	}

	view := &CatalogView{
		Query:  query,
		Genre:  genre,
		Genres: []string{domain.AllCategories},
	}

	seen := map[string]bool{}
	for _, b := range books {
		if !seen[b.Genre] {
			seen[b.Genre] = true
			view.Genres = append(view.Genres, b.Genre)
		}
	}

	index := map[string]int{}
	for _, b := range books {
		if !matchesQuery(b, query) {
			continue
		}
		if genre != domain.AllCategories && b.Genre != genre {
			continue
		}

		s.withCover(b)
		i, ok := index[b.Genre]
		if !ok {
			i = len(view.Groups)
			index[b.Genre] = i
			view.Groups = append(view.Groups, GenreGroup{Genre: b.Genre, Slug: slug.Make(b.Genre)})
		}
		view.Groups[i].Books = append(view.Groups[i].Books, b)
		view.Total++
	}

	return view, nil
}

// Filter returns the flat filtered list, used by the JSON catalog
func (s *CatalogService) Filter(ctx context.Context, query, genre string) ([]*models.Book, error) {
	view, err := s.Browse(ctx, query, genre)
	if err != nil {
		return nil, err
	}
	books := make([]*models.Book, 0, view.Total)
	for _, g := range view.Groups {
		books = append(books, g.Books...)
	}
	return books, nil
}

// Get returns one copy
func (s *CatalogService) Get(ctx context.Context, id int64) (*models.Book, error) {
	book, err := s.inventory.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.withCover(book), nil
}

func (s *CatalogService) withCover(b *models.Book) *models.Book {
	if strings.TrimSpace(b.CoverURL) == "" {
		b.CoverURL = s.placeholder
	}
	return b
}

func matchesQuery(b *models.Book, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.Author), q)
}
