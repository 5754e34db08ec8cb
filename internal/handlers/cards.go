package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"banana-product-listing/internal/models"
	"banana-product-listing/internal/store"
)

type CardsHandler struct {
	store *store.Store
}

func NewCardsHandler(cardStore *store.Store) *CardsHandler {
	return &CardsHandler{store: cardStore}
}

// Generate godoc
// @Summary     Generate a product card
// @Description Sends the clothing and model images to the generation service and derives a product card from its analysis.
// @Tags        cards
// @Accept      multipart/form-data
// @Produce     json
// @Param       clothing_image formData file true "Clothing item image"
// @Param       model_image formData file true "Model image"
// @Param       output_filename formData string false "Custom filename for the generated image"
// @Success     200 {object} models.ProductCard
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /cards/generate [post]
func (h *CardsHandler) Generate(c *gin.Context) {
	clothing, err := readImage(c, "clothing_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read clothing image",
			Message: err.Error(),
		})
		return
	}
	model, err := readImage(c, "model_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read model image",
			Message: err.Error(),
		})
		return
	}

	outputName := strings.TrimSpace(c.PostForm("output_filename"))
	if outputName == "" {
		outputName = fmt.Sprintf("product_listing_%s.png", uuid.New().String()[:8])
	} else if !hasImageExtension(outputName) {
		outputName += ".png"
	}

	card, err := h.store.GenerateProductCard(clothing, model, outputName)
	if err != nil {
		status := http.StatusBadGateway
		var validationErr *store.ValidationError
		switch {
		case errors.Is(err, store.ErrGenerationInProgress):
			status = http.StatusConflict
		case errors.As(err, &validationErr):
			status = http.StatusBadRequest
		}
		c.JSON(status, models.ErrorResponse{
			Error:   "generation failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, card)
}

// List godoc
// @Summary     Current store state
// @Description Returns the generation flag, the generated cards newest first, and the last error if any.
// @Tags        cards
// @Produce     json
// @Success     200 {object} models.StoreSnapshot
// @Router      /cards [get]
func (h *CardsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Snapshot())
}

// Clear godoc
// @Summary     Clear all generated cards
// @Tags        cards
// @Success     204
// @Router      /cards [delete]
func (h *CardsHandler) Clear(c *gin.Context) {
	h.store.ClearCards()
	c.Status(http.StatusNoContent)
}

// DismissError godoc
// @Summary     Dismiss the last generation error
// @Tags        cards
// @Success     204
// @Router      /cards/error [delete]
func (h *CardsHandler) DismissError(c *gin.Context) {
	h.store.DismissError()
	c.Status(http.StatusNoContent)
}

// readImage pulls one image out of the multipart form. A missing file is not
// an error here: the store reports absent images itself so that the failure
// surfaces through lastError like every other one.
func readImage(c *gin.Context, field string) (models.ImageInput, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return models.ImageInput{}, nil
		}
		return models.ImageInput{}, fmt.Errorf("failed to parse form field %s: %w", field, err)
	}

	src, err := file.Open()
	if err != nil {
		return models.ImageInput{}, fmt.Errorf("failed to open %s: %w", field, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return models.ImageInput{}, fmt.Errorf("failed to read %s: %w", field, err)
	}

	return models.ImageInput{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func hasImageExtension(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".png") ||
		strings.HasSuffix(lower, ".jpg") ||
		strings.HasSuffix(lower, ".jpeg")
}
