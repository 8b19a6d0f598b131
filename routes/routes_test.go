package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"scrapiz/config"
	memoryRepo "scrapiz/database/repository/memory"
	"scrapiz/handlers"
	"scrapiz/models"
	"scrapiz/services/address"
	"scrapiz/services/admin"
	"scrapiz/services/booking"
	"scrapiz/services/profile"
	"scrapiz/services/storage"
	"scrapiz/utils"

	"github.com/gin-gonic/gin"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR fake image body")

type testApp struct {
	router *gin.Engine
	store  *memoryRepo.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret"

	store := memoryRepo.NewStore()
	drafts := booking.NewMemoryDraftStore()
	denylist := utils.NewMemoryTokenDenylist()
	photos := storage.NewMemoryPhotoStore("https://cdn.test/booking-photos")

	// pickups are booked relative to the real clock here
	wizard := booking.NewWizard(time.UTC)
	addressService := address.NewAddressService(store.Addresses(), nil)
	profileService := profile.NewProfileService(store.Profiles(), nil)
	submitter := &booking.Submitter{
		Wizard:      wizard,
		Drafts:      drafts,
		Addresses:   addressService,
		Bookings:    store.Bookings(),
		Submissions: store.Bookings(),
		Photos:      photos,
		Metrics:     utils.NopMetrics(),
	}
	adminService := admin.NewAdminService(store.Bookings(), store.Profiles(), booking.NewStatusMachine(false), nil, nil, time.UTC, nil)

	hb := handlers.NewHandlerBundle(
		handlers.NewAuthHandler(profileService, denylist),
		handlers.NewProfileHandler(profileService),
		handlers.NewAddressHandler(addressService),
		handlers.NewBookingHandler(booking.NewDraftService(wizard, drafts, addressService, nil), submitter),
		handlers.NewHistoryHandler(booking.NewHistoryService(store.Bookings(), "1234567890", nil)),
		handlers.NewAdminHandler(adminService),
	)
	hb.ProfileRepo = store.Profiles()

	r := gin.New()
	RegisterRoutes(r, hb)
	return &testApp{router: r, store: store}
}

func token(t *testing.T, userID string) string {
	t.Helper()
	tok, err := utils.GenerateToken(userID, userID+"@example.com", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func (a *testApp) do(t *testing.T, method, path, tok string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) upload(t *testing.T, path, tok, fileName string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(data)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func TestAPIRequiresToken(t *testing.T) {
	app := newTestApp(t)
	if w := app.do(t, http.MethodGet, "/api/bookings", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if w := app.do(t, http.MethodGet, "/health", "", nil); w.Code == http.StatusUnauthorized {
		t.Error("health must stay public")
	}
}

func TestBookingFlow(t *testing.T) {
	app := newTestApp(t)
	tok := token(t, "u1")

	w := app.do(t, http.MethodPost, "/api/booking/drafts", tok, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create draft: %d %s", w.Code, w.Body.String())
	}
	draft := decode[models.BookingDraft](t, w)
	base := "/api/booking/drafts/" + draft.ID

	if w := app.do(t, http.MethodPost, base+"/next", tok, nil); w.Code != http.StatusBadRequest {
		t.Errorf("next on empty step: %d, want 400", w.Code)
	}

	pickup := time.Now().UTC().AddDate(0, 0, 2).Format(models.DateLayout)
	w = app.do(t, http.MethodPatch, base, tok, map[string]interface{}{
		"material_category":   "metal",
		"quantity_estimation": "2 kg aluminum cans",
		"address": map[string]string{
			"title": "Home", "address_line": "12 MG Road", "city": "Pune", "pin_code": "411001",
		},
		"pickup_date":    pickup,
		"time_slot":      "9:00 AM - 11:00 AM",
		"payment_method": "cash",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("patch draft: %d %s", w.Code, w.Body.String())
	}

	if w := app.upload(t, base+"/photos", tok, "notes.txt", []byte("plain text")); w.Code != http.StatusBadRequest {
		t.Errorf("non-image upload: %d, want 400", w.Code)
	}
	if w := app.upload(t, base+"/photos", tok, "cans.png", pngBytes); w.Code != http.StatusOK {
		t.Fatalf("photo upload: %d %s", w.Code, w.Body.String())
	}

	w = app.do(t, http.MethodPost, base+"/submit", tok, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("submit: %d %s", w.Code, w.Body.String())
	}
	created := decode[models.BookingWithDetails](t, w)
	if created.Status != models.StatusScheduled || len(created.Photos) != 1 {
		t.Errorf("unexpected booking: %+v", created)
	}

	if w := app.do(t, http.MethodGet, base, tok, nil); w.Code != http.StatusNotFound {
		t.Errorf("draft after submit: %d, want 404", w.Code)
	}

	w = app.do(t, http.MethodGet, "/api/bookings", tok, nil)
	history := decode[[]models.BookingWithDetails](t, w)
	if len(history) != 1 || history[0].ID != created.ID {
		t.Fatalf("history = %+v", history)
	}
	if history[0].Address == nil || history[0].Address.Title != "Home" {
		t.Error("history should join the address")
	}

	if w := app.do(t, http.MethodGet, "/api/bookings/"+created.ID, token(t, "u2"), nil); w.Code != http.StatusNotFound {
		t.Errorf("foreign booking: %d, want 404", w.Code)
	}

	w = app.do(t, http.MethodGet, "/api/bookings/"+created.ID+"/support", tok, nil)
	link := decode[map[string]string](t, w)
	if !strings.HasPrefix(link["url"], "https://wa.me/1234567890?text=") {
		t.Errorf("support link = %q", link["url"])
	}
}

func TestAdminRoutes(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	app.store.Profiles().Upsert(ctx, &models.Profile{ID: "boss", Role: models.RoleAdmin})
	app.store.Bookings().Put(models.Booking{ID: "b1", UserID: "u1", Status: models.StatusScheduled, CreatedAt: time.Now()})

	if w := app.do(t, http.MethodGet, "/api/admin/stats", token(t, "u1"), nil); w.Code != http.StatusForbidden {
		t.Errorf("non-admin stats: %d, want 403", w.Code)
	}

	boss := token(t, "boss")
	w := app.do(t, http.MethodGet, "/api/admin/stats", boss, nil)
	stats := decode[models.DashboardStats](t, w)
	if stats.TotalBookings != 1 || stats.PendingBookings != 1 {
		t.Errorf("stats = %+v", stats)
	}

	if w := app.do(t, http.MethodGet, "/api/admin/bookings?status=bogus", boss, nil); w.Code != http.StatusBadRequest {
		t.Errorf("bogus filter: %d, want 400", w.Code)
	}

	w = app.do(t, http.MethodPatch, "/api/admin/bookings/b1?status=completed", boss, map[string]interface{}{
		"status":      "completed",
		"final_price": 180.5,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("patch: %d %s", w.Code, w.Body.String())
	}
	resp := decode[struct {
		Booking  models.Booking              `json:"booking"`
		Bookings []models.BookingWithDetails `json:"bookings"`
	}](t, w)
	if resp.Booking.Status != models.StatusCompleted || len(resp.Bookings) != 1 {
		t.Errorf("patch response = %+v", resp)
	}

	w = app.do(t, http.MethodGet, "/api/admin/bookings/export?status=completed", boss, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Header().Get("Content-Disposition"), ".xlsx") {
		t.Errorf("export: %d %v", w.Code, w.Header())
	}
}

func TestSignOutRevokesToken(t *testing.T) {
	app := newTestApp(t)
	tok := token(t, "u1")

	if w := app.do(t, http.MethodGet, "/api/auth/me", tok, nil); w.Code != http.StatusOK {
		t.Fatalf("me: %d", w.Code)
	}
	if w := app.do(t, http.MethodPost, "/api/auth/signout", tok, nil); w.Code != http.StatusOK {
		t.Fatalf("signout: %d", w.Code)
	}
	if w := app.do(t, http.MethodGet, "/api/auth/me", tok, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("me after signout: %d, want 401", w.Code)
	}
}
