// Package derive turns the generation service's free-text analysis into
// presentable product metadata using a fixed, ordered rule table.
package derive

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"banana-product-listing/internal/models"
)

// RandSource supplies the price perturbation. *math/rand.Rand satisfies it;
// tests substitute a fixed source to pin exact prices.
type RandSource interface {
	Intn(n int) int
}

// nameRules is evaluated in order; the first keyword contained in the
// lowercased first sentence wins.
var nameRules = []struct {
	keyword string
	label   string
}{
	{"hat", "Premium Straw Hat"},
	{"shirt", "Classic Cotton Shirt"},
	{"dress", "Elegant Summer Dress"},
	{"jacket", "Designer Jacket"},
}

// ProductName derives a display name from the item description. Only the
// first sentence is considered. When no keyword matches, the first three
// words are title-cased instead (fewer if the sentence is shorter).
func ProductName(description string) string {
	sentence := firstSentence(description)
	lower := strings.ToLower(sentence)
	for _, rule := range nameRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.label
		}
	}

	words := strings.Fields(sentence)
	if len(words) == 0 {
		return "Generated Product"
	}
	if len(words) > 3 {
		words = words[:3]
	}
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// Price prices an item from its description and tags. The base is 50, except
// that "hat" reassigns it to 45 outright. The additive adjustments below are
// independent and applied in order, then a uniform perturbation in [-10, +9]
// is added and the result floored at 25.
func Price(description string, tags []string, rng RandSource) string {
	desc := strings.ToLower(description)
	tagSet := make(map[string]bool, len(tags))
	for _, t := range tags {
		tagSet[strings.ToLower(t)] = true
	}

	price := 50
	if strings.Contains(desc, "hat") {
		price = 45
	}
	if strings.Contains(desc, "premium") || strings.Contains(desc, "classic") {
		price += 20
	}
	if tagSet["luxury"] || tagSet["designer"] {
		price += 30
	}
	if tagSet["handmade"] || tagSet["artisan"] {
		price += 25
	}
	if strings.Contains(desc, "straw") && strings.Contains(desc, "wide-brim") {
		price += 15
	}

	price += rng.Intn(20) - 10
	if price < 25 {
		price = 25
	}
	return fmt.Sprintf("$%d.00", price)
}

// ProductCard maps a successful generation response onto a card. imageURL
// must already be absolute; the same asset backs both the display image and
// the product image, since the service produces a single output. The card ID
// comes from the generation instant, so two cards created in the same clock
// tick would collide.
func ProductCard(resp *models.GenerationResponse, imageURL string, rng RandSource) models.ProductCard {
	now := time.Now()
	return models.ProductCard{
		ID:              strconv.FormatInt(now.UnixNano(), 10),
		ProductName:     ProductName(resp.ClothingAnalysis.Description),
		Price:           Price(resp.ClothingAnalysis.Description, resp.ClothingAnalysis.Tags, rng),
		Description:     resp.ClothingAnalysis.Description,
		Tags:            resp.ClothingAnalysis.Tags,
		ImageURL:        imageURL,
		ProductImageURL: imageURL,
		CreatedAt:       now,
	}
}

func firstSentence(s string) string {
	if idx := strings.Index(s, "."); idx >= 0 {
		return s[:idx]
	}
	return s
}

func capitalize(w string) string {
	r := []rune(w)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
