package banana_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banana-product-listing/internal/banana"
	"banana-product-listing/internal/models"
)

func testImages() (models.ImageInput, models.ImageInput) {
	clothing := models.ImageInput{Filename: "clothing.png", ContentType: "image/png", Data: []byte("clothing-bytes")}
	model := models.ImageInput{Filename: "model.jpeg", ContentType: "image/jpeg", Data: []byte("model-bytes")}
	return clothing, model
}

func successBody() models.GenerationResponse {
	return models.GenerationResponse{
		Success:            true,
		Message:            "Product listing generated successfully!",
		ClothingAnalysis:   models.ClothingAnalysis{Description: "A classic straw wide-brim hat.", Tags: []string{"straw", "wide-brim"}},
		GeneratedImageURL:  "/images/listing.png",
		GeneratedImagePath: "output/listing.png",
	}
}

func TestSubmit_Success(t *testing.T) {
	var gotMethod, gotPath, gotOutputName string
	var gotClothingType, gotModelType string
	var gotClothing, gotModel []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(32<<20))

		clothingFile, clothingHeader, err := r.FormFile("clothing_image")
		require.NoError(t, err)
		gotClothing, _ = io.ReadAll(clothingFile)
		clothingFile.Close()
		gotClothingType = clothingHeader.Header.Get("Content-Type")

		modelFile, modelHeader, err := r.FormFile("model_image")
		require.NoError(t, err)
		gotModel, _ = io.ReadAll(modelFile)
		modelFile.Close()
		gotModelType = modelHeader.Header.Get("Content-Type")

		gotOutputName = r.FormValue("output_filename")

		json.NewEncoder(w).Encode(successBody())
	}))
	defer server.Close()

	client := banana.NewClient(server.URL)
	clothing, model := testImages()

	resp, err := client.Submit(clothing, model, "listing.png")
	require.NoError(t, err)

	assert.Equal(t, "POST", gotMethod)
	assert.Equal(t, "/generate-product-listing", gotPath)
	assert.Equal(t, []byte("clothing-bytes"), gotClothing)
	assert.Equal(t, []byte("model-bytes"), gotModel)
	assert.Equal(t, "image/png", gotClothingType)
	assert.Equal(t, "image/jpeg", gotModelType)
	assert.Equal(t, "listing.png", gotOutputName)

	assert.True(t, resp.Success)
	assert.Equal(t, "A classic straw wide-brim hat.", resp.ClothingAnalysis.Description)
	assert.Equal(t, []string{"straw", "wide-brim"}, resp.ClothingAnalysis.Tags)
	assert.Equal(t, "/images/listing.png", resp.GeneratedImageURL)
}

func TestSubmit_OmitsEmptyOutputFilename(t *testing.T) {
	var hasOutputName bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		_, hasOutputName = r.MultipartForm.Value["output_filename"]
		json.NewEncoder(w).Encode(successBody())
	}))
	defer server.Close()

	client := banana.NewClient(server.URL)
	clothing, model := testImages()

	_, err := client.Submit(clothing, model, "")
	require.NoError(t, err)
	assert.False(t, hasOutputName)
}

func TestSubmit_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal error"))
	}))
	defer server.Close()

	client := banana.NewClient(server.URL)
	clothing, model := testImages()

	_, err := client.Submit(clothing, model, "")
	require.Error(t, err)

	var serviceErr *banana.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, http.StatusInternalServerError, serviceErr.StatusCode)
	assert.Equal(t, "internal error", serviceErr.Body)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "internal error")
}

func TestSubmit_ReportedFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.GenerationResponse{Success: false, Message: "no image was generated"})
	}))
	defer server.Close()

	client := banana.NewClient(server.URL)
	clothing, model := testImages()

	_, err := client.Submit(clothing, model, "")
	require.Error(t, err)

	var serviceErr *banana.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Contains(t, err.Error(), "no image was generated")
}

func TestSubmit_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := banana.NewClient(baseURL)
	clothing, model := testImages()

	_, err := client.Submit(clothing, model, "")
	require.Error(t, err)

	var transportErr *banana.TransportError
	assert.True(t, errors.As(err, &transportErr))
	assert.Contains(t, err.Error(), "unreachable")
}

func TestImageURL(t *testing.T) {
	client := banana.NewClient("http://localhost:8000/")

	assert.Equal(t, "http://localhost:8000/images/a.png", client.ImageURL("/images/a.png"))
	assert.Equal(t, "http://localhost:8000/images/a.png", client.ImageURL("images/a.png"))
	assert.Equal(t, "https://cdn.example.com/a.png", client.ImageURL("https://cdn.example.com/a.png"))
	assert.Equal(t, "", client.ImageURL(""))
}
