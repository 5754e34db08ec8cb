package models

// GenerationResponse is the success envelope returned by the generation
// service for POST /generate-product-listing.
type GenerationResponse struct {
	Success            bool             `json:"success"`
	Message            string           `json:"message"`
	ClothingAnalysis   ClothingAnalysis `json:"clothing_analysis"`
	GeneratedImageURL  string           `json:"generated_image_url"`
	GeneratedImagePath string           `json:"generated_image_path"`
}

// StoreSnapshot is the read-only view of store state handed to the
// presentation layer. Cards are newest first.
type StoreSnapshot struct {
	IsGenerating bool          `json:"is_generating"`
	Cards        []ProductCard `json:"cards"`
	LastError    string        `json:"last_error,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
