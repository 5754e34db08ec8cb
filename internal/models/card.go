package models

import "time"

// ClothingAnalysis is the semantic output of the generation service: a
// free-text description of the clothing item plus an ordered tag list.
// Tag order is display-significant and must be preserved.
type ClothingAnalysis struct {
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// ProductCard is the durable unit of generated output. Created atomically on
// a successful generation, immutable afterwards, removed only by a clear-all.
type ProductCard struct {
	ID              string    `json:"id"`
	ProductName     string    `json:"product_name"`
	Price           string    `json:"price"`
	Description     string    `json:"description"`
	Tags            []string  `json:"tags"`
	ImageURL        string    `json:"image_url"`
	ProductImageURL string    `json:"product_image_url"`
	CreatedAt       time.Time `json:"created_at"`
}
