package listings

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"atlas-backend/internal/database"
	"atlas-backend/internal/uploads"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupHandlersTest(t *testing.T) (*fiber.App, *Service) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc := &Service{DB: db}
	h := &Handlers{
		Service: svc,
		Uploads: &uploads.Service{Dir: t.TempDir()},
	}

	app := fiber.New()
	app.Get("/api/listings", h.List)
	app.Get("/api/listings/:id", h.GetOne)
	app.Post("/api/listings", h.Create)
	app.Put("/api/listings/:id", h.Update)
	app.Patch("/api/listings/:id/toggle-pin", h.TogglePin)
	app.Delete("/api/listings/:id", h.Delete)
	return app, svc
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, fileNames ...string) *http.Request {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, name := range fileNames {
		fw, err := w.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = io.Copy(fw, strings.NewReader("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func listingFields() map[string]string {
	return map[string]string{
		"title":     "Steel Flatbed – 8ft",
		"condition": "New",
		"price":     "$2,450",
		"fits":      "Ford F-250",
		"location":  "Houston, TX",
	}
}

func createListing(t *testing.T, app *fiber.App, fields map[string]string, fileNames ...string) int64 {
	resp, err := app.Test(multipartRequest(t, "POST", "/api/listings", fields, fileNames...))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var out struct {
		Message string `json:"message"`
		Data    struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "success", out.Message)
	require.NotZero(t, out.Data.ID)
	return out.Data.ID
}

func TestCreateListing_MissingField(t *testing.T) {
	app, _ := setupHandlersTest(t)
	fields := listingFields()
	delete(fields, "title")

	resp, err := app.Test(multipartRequest(t, "POST", "/api/listings", fields, "bed.jpg"))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "missing required field: title", out["error"])
}

func TestCreateListing_NoImage(t *testing.T) {
	app, _ := setupHandlersTest(t)
	resp, err := app.Test(multipartRequest(t, "POST", "/api/listings", listingFields()))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestCreateListing_ThenGetReturnsImages(t *testing.T) {
	app, _ := setupHandlersTest(t)
	id := createListing(t, app, listingFields(), "bed.jpg")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/listings/1", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var got struct {
		ID     int64    `json:"id"`
		Image  string   `json:"image"`
		Images []string `json:"images"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, id, got.ID)
	require.Len(t, got.Images, 1)
	assert.Equal(t, got.Image, got.Images[0])
	assert.True(t, strings.HasPrefix(got.Image, "/uploads/"))
	assert.True(t, strings.HasSuffix(got.Image, ".jpg"))
}

func TestCreateListing_MultipleImagesKeepOrder(t *testing.T) {
	app, svc := setupHandlersTest(t)
	id := createListing(t, app, listingFields(), "front.jpg", "side.jpg", "rear.jpg")

	got, err := svc.GetByID(context.Background(), uint(id))
	require.NoError(t, err)
	require.Len(t, got.ImageList(), 3)
	assert.Equal(t, got.Image, got.ImageList()[0])
}

func TestListListings_PinnedFirst(t *testing.T) {
	app, _ := setupHandlersTest(t)
	createListing(t, app, listingFields(), "a.jpg")
	second := createListing(t, app, listingFields(), "b.jpg")
	createListing(t, app, listingFields(), "c.jpg")

	resp, err := app.Test(httptest.NewRequest("PATCH", "/api/listings/2/toggle-pin", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/listings", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var listings []struct {
		ID     int64 `json:"id"`
		Pinned bool  `json:"pinned"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listings))
	require.Len(t, listings, 3)
	assert.Equal(t, second, listings[0].ID)
	assert.True(t, listings[0].Pinned)
}

func TestUpdateListing_PriceOnlyKeepsImage(t *testing.T) {
	app, svc := setupHandlersTest(t)
	id := createListing(t, app, listingFields(), "bed.jpg")

	before, err := svc.GetByID(context.Background(), uint(id))
	require.NoError(t, err)

	fields := listingFields()
	fields["price"] = "$2,200"
	resp, err := app.Test(multipartRequest(t, "PUT", "/api/listings/1", fields))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var out struct {
		Changes int64 `json:"changes"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.EqualValues(t, 1, out.Changes)

	after, err := svc.GetByID(context.Background(), uint(id))
	require.NoError(t, err)
	assert.Equal(t, "$2,200", after.Price)
	assert.Equal(t, before.Image, after.Image)
	assert.Equal(t, before.ImageList(), after.ImageList())
}

func TestUpdateListing_UnknownIDReportsZeroChanges(t *testing.T) {
	app, _ := setupHandlersTest(t)
	resp, err := app.Test(multipartRequest(t, "PUT", "/api/listings/42", listingFields()))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var out struct {
		Changes int64 `json:"changes"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Zero(t, out.Changes)
}

func TestTogglePin_UnknownIDReturns404(t *testing.T) {
	app, _ := setupHandlersTest(t)
	resp, err := app.Test(httptest.NewRequest("PATCH", "/api/listings/42/toggle-pin", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestDeleteListing_ThenGetReturns404(t *testing.T) {
	app, _ := setupHandlersTest(t)
	createListing(t, app, listingFields(), "bed.jpg")

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/listings/1", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var out struct {
		Changes int64 `json:"changes"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.EqualValues(t, 1, out.Changes)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/listings/1", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "null", strings.TrimSpace(string(body)))
}

func TestDeleteListing_UnknownIDReportsZeroChanges(t *testing.T) {
	app, _ := setupHandlersTest(t)
	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/listings/42", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var out struct {
		Changes int64 `json:"changes"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Zero(t, out.Changes)
}

func TestGetListing_InvalidID(t *testing.T) {
	app, _ := setupHandlersTest(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/api/listings/not-a-number", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
