// Package store owns all mutable generation state: the in-flight flag, the
// generated card list and the last error. The presentation layer only ever
// reads snapshots and invokes the actions defined here.
package store

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"banana-product-listing/internal/banana"
	"banana-product-listing/internal/derive"
	"banana-product-listing/internal/models"
)

// ErrGenerationInProgress rejects a generate call issued while another
// attempt is still pending. The rejected call leaves all state untouched.
var ErrGenerationInProgress = errors.New("generation already in progress")

// ValidationError is a locally detected bad input. It never reaches the
// network. Field names the offending image when the failure is per-image.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/webp": true,
}

type Store struct {
	client *banana.Client
	rng    derive.RandSource

	mu           sync.Mutex
	isGenerating bool
	cards        []models.ProductCard
	lastError    string
}

// New creates a store backed by the given service client. A nil rng falls
// back to a wall-clock seeded source.
func New(client *banana.Client, rng derive.RandSource) *Store {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Store{client: client, rng: rng}
}

// GenerateProductCard runs one generation attempt: validate both images, call
// the service, derive the card, prepend it to the list. Any failure settles
// the attempt with isGenerating false and the failure message in lastError,
// leaving the card list unchanged. Only one attempt may be in flight.
func (s *Store) GenerateProductCard(clothing, model models.ImageInput, outputName string) (models.ProductCard, error) {
	s.mu.Lock()
	if s.isGenerating {
		s.mu.Unlock()
		return models.ProductCard{}, ErrGenerationInProgress
	}
	s.isGenerating = true
	s.lastError = ""
	s.mu.Unlock()

	if err := validateImages(clothing, model); err != nil {
		return models.ProductCard{}, s.fail(err)
	}

	resp, err := s.client.Submit(clothing, model, outputName)
	if err != nil {
		return models.ProductCard{}, s.fail(err)
	}

	card := derive.ProductCard(resp, s.client.ImageURL(resp.GeneratedImageURL), s.rng)

	s.mu.Lock()
	s.cards = append([]models.ProductCard{card}, s.cards...)
	s.lastError = ""
	s.isGenerating = false
	s.mu.Unlock()

	return card, nil
}

// Snapshot returns a copy of the store state. The card slice is copied so
// callers cannot reorder or mutate the stored list.
func (s *Store) Snapshot() models.StoreSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	cards := make([]models.ProductCard, len(s.cards))
	copy(cards, s.cards)
	return models.StoreSnapshot{
		IsGenerating: s.isGenerating,
		Cards:        cards,
		LastError:    s.lastError,
	}
}

// ClearCards empties the card list and clears the last error. The in-flight
// flag is deliberately left alone.
func (s *Store) ClearCards() {
	s.mu.Lock()
	s.cards = nil
	s.lastError = ""
	s.mu.Unlock()
}

// SetError overwrites the last error message without touching other fields.
func (s *Store) SetError(message string) {
	s.mu.Lock()
	s.lastError = message
	s.mu.Unlock()
}

// DismissError clears the last error message.
func (s *Store) DismissError() {
	s.SetError("")
}

func (s *Store) fail(err error) error {
	s.mu.Lock()
	s.lastError = err.Error()
	s.isGenerating = false
	s.mu.Unlock()
	return err
}

func validateImages(clothing, model models.ImageInput) error {
	if len(clothing.Data) == 0 || len(model.Data) == 0 {
		return &ValidationError{Reason: "both images required"}
	}
	if !allowedImageTypes[strings.ToLower(clothing.ContentType)] {
		return &ValidationError{
			Field:  "clothing_image",
			Reason: fmt.Sprintf("clothing image must be a valid image file (jpg, jpeg, png, gif, bmp, webp), got %q", clothing.ContentType),
		}
	}
	if !allowedImageTypes[strings.ToLower(model.ContentType)] {
		return &ValidationError{
			Field:  "model_image",
			Reason: fmt.Sprintf("model image must be a valid image file (jpg, jpeg, png, gif, bmp, webp), got %q", model.ContentType),
		}
	}
	return nil
}
