package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/dealerhub/dealership-service/internal/api/http"
	"github.com/dealerhub/dealership-service/internal/api/http/handlers"
	"github.com/dealerhub/dealership-service/internal/auth"
	"github.com/dealerhub/dealership-service/internal/config"
	"github.com/dealerhub/dealership-service/internal/domain"
	"github.com/dealerhub/dealership-service/internal/media"
	"github.com/dealerhub/dealership-service/internal/observability"
	"github.com/dealerhub/dealership-service/internal/persistence"
	"github.com/dealerhub/dealership-service/internal/service"
)

type fakeUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeVehicleRepo struct {
	vehicles map[string]*domain.Vehicle
	seq      int
}

func (r *fakeVehicleRepo) Create(_ context.Context, vehicle *domain.Vehicle) error {
	r.seq++
	vehicle.ID = fmt.Sprintf("veh-%d", r.seq)
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = vehicle.CreatedAt
	stored := *vehicle
	r.vehicles[vehicle.ID] = &stored
	return nil
}

func (r *fakeVehicleRepo) Update(_ context.Context, vehicle *domain.Vehicle) error {
	if _, ok := r.vehicles[vehicle.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *vehicle
	r.vehicles[vehicle.ID] = &stored
	return nil
}

func (r *fakeVehicleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.vehicles[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.vehicles, id)
	return nil
}

func (r *fakeVehicleRepo) GetByID(_ context.Context, id string) (*domain.Vehicle, error) {
	if vehicle, ok := r.vehicles[id]; ok {
		copied := *vehicle
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeVehicleRepo) GetByTitle(_ context.Context, title string) (*domain.Vehicle, error) {
	for _, vehicle := range r.vehicles {
		if vehicle.Title == title {
			copied := *vehicle
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeVehicleRepo) List(_ context.Context) ([]domain.Vehicle, error) {
	result := make([]domain.Vehicle, 0, len(r.vehicles))
	for _, vehicle := range r.vehicles {
		result = append(result, *vehicle)
	}
	return result, nil
}

type fakeUploader struct {
	destroyed []string
	seq       int
}

func (u *fakeUploader) Upload(_ context.Context, _ *multipart.FileHeader) (*media.UploadResult, error) {
	u.seq++
	publicID := fmt.Sprintf("img-%d", u.seq)
	return &media.UploadResult{
		SecureURL: "https://res.cloudinary.com/demo/image/upload/v1/dealership/vehicles/" + publicID + ".jpg",
		PublicID:  "dealership/vehicles/" + publicID,
	}, nil
}

func (u *fakeUploader) Destroy(_ context.Context, publicID string) error {
	u.destroyed = append(u.destroyed, publicID)
	return nil
}

func (u *fakeUploader) Ping(context.Context) error { return nil }
func (u *fakeUploader) Folder() string             { return "dealership/vehicles" }

type noopCache struct{}

func (noopCache) Get(context.Context) ([]domain.Vehicle, bool) { return nil, false }
func (noopCache) Set(context.Context, []domain.Vehicle)        {}
func (noopCache) Invalidate(context.Context)                   {}

type testServer struct {
	app      *fiber.App
	uploader *fakeUploader
	vehicles *fakeVehicleRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := zap.NewNop()
	userRepo := &fakeUserRepo{users: map[string]*domain.User{}}
	vehicleRepo := &fakeVehicleRepo{vehicles: map[string]*domain.Vehicle{}}
	uploader := &fakeUploader{}

	authService := service.NewAuthService(config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 168,
		BcryptCost:    bcrypt.MinCost,
	}, userRepo)
	vehicleService := service.NewVehicleService(vehicleRepo, uploader, noopCache{}, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", &persistence.Postgres{}, &persistence.Redis{}, uploader),
		Auth:           handlers.NewAuthHandler(authService),
		Vehicles:       handlers.NewVehiclesHandler(vehicleService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), userRepo),
		Upload:         media.NewUploadMiddleware(uploader, logger),
	})

	return &testServer{app: app, uploader: uploader, vehicles: vehicleRepo}
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, req *http.Request) (*http.Response, apiResponse) {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	var parsed apiResponse
	if len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, &parsed), "body: %s", body)
	}
	return resp, parsed
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type uploadFile struct {
	name        string
	contentType string
	content     []byte
}

func imageFile(name string) uploadFile {
	return uploadFile{name: name, contentType: "image/jpeg", content: []byte("jpeg-bytes")}
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, files []uploadFile) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, file := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, file.name))
		header.Set("Content-Type", file.contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(file.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func (s *testServer) registerAndLogin(t *testing.T) string {
	t.Helper()
	resp, body := s.do(t, jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Dealer",
		"email":    "dealer@example.com",
		"password": "hunter22",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func vehicleFields(title string) map[string]string {
	return map[string]string{
		"title":       title,
		"brand":       "Honda",
		"model":       "City",
		"vehicleType": "Car",
		"fuelType":    "Petrol",
		"year":        "2020",
		"price":       "650000",
	}
}

func authorize(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
