package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"artloop/internal/config"
	"artloop/internal/middleware"
	"artloop/internal/models"
	"artloop/internal/services"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminKey = "test-admin-key"

// In-memory stores backing the router under test

type stubRegistrationRepo struct {
	registrations map[string]*models.Registration
}

func (s *stubRegistrationRepo) Create(reg *models.Registration) error {
	if _, exists := s.registrations[reg.RegistrationCode]; exists {
		return models.ErrDuplicateCode
	}
	copied := *reg
	s.registrations[reg.RegistrationCode] = &copied
	return nil
}

func (s *stubRegistrationRepo) GetByCode(code string) (*models.Registration, error) {
	reg, exists := s.registrations[code]
	if !exists {
		return nil, models.ErrRegistrationNotFound
	}
	copied := *reg
	return &copied, nil
}

func (s *stubRegistrationRepo) CheckIn(code string, at time.Time) (*models.Registration, error) {
	reg, exists := s.registrations[code]
	if !exists {
		return nil, models.ErrRegistrationNotFound
	}
	if reg.CheckInStatus == models.CheckInPending {
		reg.CheckInStatus = models.CheckedIn
		reg.CheckInTime = &at
	}
	copied := *reg
	return &copied, nil
}

func (s *stubRegistrationRepo) GetByEvent(eventTitle string) ([]*models.Registration, error) {
	var result []*models.Registration
	for _, reg := range s.registrations {
		if reg.EventTitle == eventTitle {
			copied := *reg
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (s *stubRegistrationRepo) SetNotificationStatus(code string, status models.NotificationStatus) error {
	if reg, exists := s.registrations[code]; exists {
		reg.NotificationStatus = status
	}
	return nil
}

type stubEventRepo struct {
	events map[string]*models.Event
}

func (s *stubEventRepo) Create(event *models.Event) error {
	s.events[event.ID] = event
	return nil
}

func (s *stubEventRepo) GetByID(id string) (*models.Event, error) {
	event, exists := s.events[id]
	if !exists {
		return nil, models.ErrEventNotFound
	}
	return event, nil
}

func (s *stubEventRepo) GetAll(filters models.EventFilters) ([]*models.Event, error) {
	var result []*models.Event
	for _, e := range s.events {
		if filters.Status == "" || e.Status == filters.Status {
			result = append(result, e)
		}
	}
	return result, nil
}

func (s *stubEventRepo) Search(term string) ([]*models.Event, error) {
	return nil, nil
}

func (s *stubEventRepo) Update(event *models.Event) error {
	if _, exists := s.events[event.ID]; !exists {
		return models.ErrEventNotFound
	}
	s.events[event.ID] = event
	return nil
}

func (s *stubEventRepo) SoftDelete(id string) error {
	event, exists := s.events[id]
	if !exists {
		return models.ErrEventNotFound
	}
	event.Status = models.EventCancelled
	return nil
}

func (s *stubEventRepo) IncrementRegistrationCount(id string) error {
	event, exists := s.events[id]
	if !exists {
		return models.ErrEventNotFound
	}
	event.RegistrationCount++
	return nil
}

type stubArtistRepo struct {
	artists map[string]*models.Artist
}

func (s *stubArtistRepo) Create(artist *models.Artist) error {
	s.artists[artist.ID] = artist
	return nil
}

func (s *stubArtistRepo) GetByID(id string) (*models.Artist, error) {
	artist, exists := s.artists[id]
	if !exists {
		return nil, models.ErrArtistNotFound
	}
	return artist, nil
}

func (s *stubArtistRepo) GetAll(status models.ArtistStatus) ([]*models.Artist, error) {
	var result []*models.Artist
	for _, a := range s.artists {
		result = append(result, a)
	}
	return result, nil
}

func (s *stubArtistRepo) Search(term string) ([]*models.Artist, error) {
	return nil, nil
}

func (s *stubArtistRepo) Update(artist *models.Artist) error {
	if _, exists := s.artists[artist.ID]; !exists {
		return models.ErrArtistNotFound
	}
	s.artists[artist.ID] = artist
	return nil
}

func (s *stubArtistRepo) SoftDelete(id string) error {
	artist, exists := s.artists[id]
	if !exists {
		return models.ErrArtistNotFound
	}
	artist.Status = models.ArtistInactive
	return nil
}

type stubSender struct {
	sent int
	fail bool
}

func (s *stubSender) Send(to []string, subject, htmlBody string) error {
	if s.fail {
		return errors.New("delivery failed")
	}
	s.sent++
	return nil
}

type stubPaymentService struct {
	err error
}

func (s *stubPaymentService) CreatePaymentIntent(req *services.PaymentIntentRequest) (*services.PaymentIntent, error) {
	if s.err != nil {
		return nil, s.err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &services.PaymentIntent{
		ID:           "pi_test",
		ClientSecret: "pi_test_secret",
		Amount:       req.Amount,
		Currency:     "usd",
		Status:       "requires_payment_method",
	}, nil
}

type stubPinger struct{ err error }

func (s *stubPinger) Ping() error { return s.err }

type testEnv struct {
	router  http.Handler
	regRepo *stubRegistrationRepo
	events  *stubEventRepo
	artists *stubArtistRepo
	sender  *stubSender
	pinger  *stubPinger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		regRepo: &stubRegistrationRepo{registrations: make(map[string]*models.Registration)},
		events:  &stubEventRepo{events: make(map[string]*models.Event)},
		artists: &stubArtistRepo{artists: make(map[string]*models.Artist)},
		sender:  &stubSender{},
		pinger:  &stubPinger{},
	}

	mailer := services.NewRegistrationMailer(env.sender, []string{"ops@artloop.com"})
	registrationService := services.NewRegistrationService(
		env.regRepo,
		env.events,
		services.NewRandomCodeGenerator(),
		services.NewVerificationLinkEncoder("https://artloop.example.com"),
		mailer,
	)

	adminGate := middleware.NewAdminMiddleware(
		config.AdminConfig{Key: testAdminKey, SessionSecret: "test-session-secret"},
		sessions.NewCookieStore([]byte("test-session-secret")),
	)

	env.router = NewRouter(RouterDeps{
		Registrations: NewRegistrationHandler(registrationService),
		Events:        NewEventHandler(services.NewEventService(env.events)),
		Artists:       NewArtistHandler(services.NewArtistService(env.artists)),
		Payments:      NewPaymentHandler(&stubPaymentService{}),
		Orders:        NewOrderHandler(mailer),
		Admin:         NewAdminHandler(adminGate),
		Health:        NewHealthHandler(env.pinger),
		AdminGate:     adminGate,
		CORS:          middleware.DefaultCORSConfig(),
	})

	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var resp Response
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func registrationBody() map[string]interface{} {
	return map[string]interface{}{
		"customerName":   "Jane Doe",
		"customerEmail":  "jane@x.com",
		"eventTitle":     "Jazz Night",
		"eventDate":      "2026-01-18",
		"eventTime":      "7PM",
		"eventVenue":     "Hall A",
		"ticketQuantity": 2,
		"hostEmail":      "host@x.com",
	}
}

func (e *testEnv) register(t *testing.T) string {
	t.Helper()
	rec, resp := e.do(t, http.MethodPost, "/api/registrations", registrationBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	item := resp.Item.(map[string]interface{})
	return item["registrationCode"].(string)
}

func TestCreateRegistration(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.do(t, http.MethodPost, "/api/registrations", registrationBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)

	item := resp.Item.(map[string]interface{})
	assert.Regexp(t, models.RegistrationCodePattern, item["registrationCode"])
	assert.Contains(t, item["qrCodeDataURL"], "data:image/png;base64,")
	assert.Equal(t, true, item["notificationSent"])
	assert.Empty(t, resp.Details)

	// Buyer confirmation plus host alert
	assert.Equal(t, 2, env.sender.sent)
}

func TestCreateRegistrationMissingFields(t *testing.T) {
	env := newTestEnv(t)

	body := registrationBody()
	delete(body, "customerEmail")
	body["ticketQuantity"] = 0

	rec, resp := env.do(t, http.MethodPost, "/api/registrations", body, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "customerEmail")
	assert.Contains(t, resp.Error, "ticketQuantity")
	assert.Empty(t, env.regRepo.registrations)
}

func TestCreateRegistrationMalformedBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/registrations", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRegistrationReportsFailedNotification(t *testing.T) {
	env := newTestEnv(t)
	env.sender.fail = true

	rec, resp := env.do(t, http.MethodPost, "/api/registrations", registrationBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Details, "email")

	item := resp.Item.(map[string]interface{})
	assert.Equal(t, false, item["notificationSent"])
}

func TestGetRegistration(t *testing.T) {
	env := newTestEnv(t)
	code := env.register(t)

	rec, resp := env.do(t, http.MethodGet, "/api/registrations/"+code, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	item := resp.Item.(map[string]interface{})
	assert.Equal(t, code, item["registrationCode"])
	assert.Equal(t, "pending", item["checkInStatus"])
	assert.Nil(t, item["checkInTime"])
}

func TestGetRegistrationNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.do(t, http.MethodGet, "/api/registrations/ZZZZZ", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)
}

func TestCheckInRegistration(t *testing.T) {
	env := newTestEnv(t)
	code := env.register(t)

	rec, resp := env.do(t, http.MethodPost, "/api/registrations/"+code+"/check-in", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	item := resp.Item.(map[string]interface{})
	assert.Equal(t, "checked-in", item["checkInStatus"])
	assert.NotNil(t, item["checkInTime"])

	// A second scan succeeds without resetting anything
	rec, resp = env.do(t, http.MethodPost, "/api/registrations/"+code+"/check-in", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "checked-in", resp.Item.(map[string]interface{})["checkInStatus"])
}

func TestListRegistrationsByEvent(t *testing.T) {
	env := newTestEnv(t)
	env.register(t)
	env.register(t)

	rec, resp := env.do(t, http.MethodGet, "/api/registrations?event=Jazz+Night", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 2, *resp.Count)

	rec, _ = env.do(t, http.MethodGet, "/api/registrations", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegistrationStats(t *testing.T) {
	env := newTestEnv(t)
	code := env.register(t)
	env.register(t)

	rec, _ := env.do(t, http.MethodPost, "/api/registrations/"+code+"/check-in", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp := env.do(t, http.MethodGet, "/api/registrations/stats?event=Jazz+Night", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	item := resp.Item.(map[string]interface{})
	assert.Equal(t, float64(2), item["total"])
	assert.Equal(t, float64(1), item["checkedIn"])
	assert.Equal(t, float64(1), item["pending"])
	assert.Equal(t, float64(4), item["totalAttendees"])
}

func TestVerifyEndpoint(t *testing.T) {
	env := newTestEnv(t)
	code := env.register(t)

	t.Run("valid", func(t *testing.T) {
		rec, resp := env.do(t, http.MethodGet,
			fmt.Sprintf("/api/verify?code=%s&email=jane@x.com&quantity=2", code), nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		item := resp.Item.(map[string]interface{})
		assert.Equal(t, "Jane Doe", item["customerName"])
	})

	t.Run("missing parameters", func(t *testing.T) {
		rec, resp := env.do(t, http.MethodGet, "/api/verify?code="+code, nil, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, resp.Error, "email")
	})

	t.Run("unknown code", func(t *testing.T) {
		rec, _ := env.do(t, http.MethodGet, "/api/verify?code=ZZZZZ&email=jane@x.com&quantity=2", nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("forged email", func(t *testing.T) {
		rec, resp := env.do(t, http.MethodGet,
			fmt.Sprintf("/api/verify?code=%s&email=forged@x.com&quantity=2", code), nil, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.False(t, resp.Success)
	})

	t.Run("forged quantity", func(t *testing.T) {
		rec, _ := env.do(t, http.MethodGet,
			fmt.Sprintf("/api/verify?code=%s&email=jane@x.com&quantity=10", code), nil, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func eventBody() map[string]interface{} {
	return map[string]interface{}{
		"title":       "Jazz Night",
		"date":        "2026-01-18",
		"time":        "7PM",
		"venue":       "Hall A",
		"performer":   "The Quartet",
		"description": "An evening of jazz",
		"price":       "$25",
	}
}

func adminHeader() map[string]string {
	return map[string]string{"X-Admin-Key": testAdminKey}
}

func TestEventWritesRequireAdmin(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.do(t, http.MethodPost, "/api/events", eventBody(), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, resp.Success)

	rec, _ = env.do(t, http.MethodPut, "/api/events/some-id", map[string]interface{}{"venue": "Hall B"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = env.do(t, http.MethodDelete, "/api/events/some-id", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEventLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.do(t, http.MethodPost, "/api/events", eventBody(), adminHeader())
	require.Equal(t, http.StatusCreated, rec.Code)
	id := resp.Item.(map[string]interface{})["id"].(string)

	// Public read
	rec, resp = env.do(t, http.MethodGet, "/api/events/"+id, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Jazz Night", resp.Item.(map[string]interface{})["title"])

	rec, resp = env.do(t, http.MethodGet, "/api/events", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 1, *resp.Count)

	// Partial update keeps untouched fields
	rec, resp = env.do(t, http.MethodPut, "/api/events/"+id, map[string]interface{}{"venue": "Hall B"}, adminHeader())
	require.Equal(t, http.StatusOK, rec.Code)
	item := resp.Item.(map[string]interface{})
	assert.Equal(t, "Hall B", item["venue"])
	assert.Equal(t, "Jazz Night", item["title"])

	// Soft delete
	rec, _ = env.do(t, http.MethodDelete, "/api/events/"+id, nil, adminHeader())
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp = env.do(t, http.MethodGet, "/api/events/"+id, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cancelled", resp.Item.(map[string]interface{})["status"])
}

func TestArtistLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.do(t, http.MethodPost, "/api/artists",
		map[string]interface{}{"name": "Nia Soul", "bio": "Vocalist"}, adminHeader())
	require.Equal(t, http.StatusCreated, rec.Code)
	item := resp.Item.(map[string]interface{})
	id := item["id"].(string)
	assert.Equal(t, "nia-soul", item["slug"])

	rec, _ = env.do(t, http.MethodGet, "/api/artists/"+id, nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.do(t, http.MethodPost, "/api/artists", map[string]interface{}{"name": "No Bio"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreatePaymentIntent(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.do(t, http.MethodPost, "/api/payments/intent", map[string]interface{}{
		"amount":        5000,
		"customerEmail": "jane@x.com",
		"eventTitle":    "Jazz Night",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	item := resp.Item.(map[string]interface{})
	assert.Equal(t, "pi_test", item["id"])
	assert.Equal(t, "pi_test_secret", item["clientSecret"])
}

func TestCreatePaymentIntentValidation(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.do(t, http.MethodPost, "/api/payments/intent",
		map[string]interface{}{"amount": 0}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp.Error, "amount")
}

func TestOrderConfirmation(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.do(t, http.MethodPost, "/api/orders/confirmation", map[string]interface{}{
		"orderID":        "ord_123",
		"customerName":   "Jane Doe",
		"customerEmail":  "jane@x.com",
		"eventTitle":     "Jazz Night",
		"ticketQuantity": 2,
		"totalAmount":    59.5,
		"paymentStatus":  "succeeded",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, 2, env.sender.sent)
}

func TestOrderConfirmationValidation(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.do(t, http.MethodPost, "/api/orders/confirmation",
		map[string]interface{}{"customerName": "Jane Doe"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp.Error, "orderID")
	assert.Equal(t, 0, env.sender.sent)
}

func TestAdminLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(t, http.MethodPost, "/api/admin/login", map[string]string{"key": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, resp := env.do(t, http.MethodPost, "/api/admin/login", map[string]string{"key": testAdminKey}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// The session cookie authorizes event writes without the header
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(eventBody()))
	req := httptest.NewRequest(http.MethodPost, "/api/events", &buf)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	createRec := httptest.NewRecorder()
	env.router.ServeHTTP(createRec, req)
	assert.Equal(t, http.StatusCreated, createRec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.do(t, http.MethodGet, "/api/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	env.pinger.err = errors.New("connection refused")
	rec, resp = env.do(t, http.MethodGet, "/api/health", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.False(t, resp.Success)
}
