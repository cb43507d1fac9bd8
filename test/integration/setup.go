package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/vncsmyrnk/assessment/internal/adapters/handler/http"
	"github.com/vncsmyrnk/assessment/internal/adapters/password"
	repo "github.com/vncsmyrnk/assessment/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/assessment/internal/adapters/token"
	"github.com/vncsmyrnk/assessment/internal/core/services"
	"github.com/vncsmyrnk/assessment/internal/logging"
)

const (
	accessSecret  = "test-access-secret"
	refreshSecret = "test-refresh-secret"
)

type TestApp struct {
	DB               *sql.DB
	DBContainer      testcontainers.Container
	AuthServer       *httptest.Server
	AssessmentServer *httptest.Server
	Client           *http.Client
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

// applyMigrations runs every up.sql schema file in name order.
func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

// setupTestApp starts Postgres and both services. The assessment service
// verifies with the auth service's access secret, as a shared-secret
// deployment would.
func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()

	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := repo.Open(ctx, dbURL)
	require.NoError(t, err)
	require.NoError(t, applyMigrations(db))

	logger := logging.Setup("integration", "test", "text", slog.LevelWarn, io.Discard)

	tokens, err := token.NewIssuer(accessSecret, refreshSecret, 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	userRepo := repo.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, password.NewHasher(4), tokens)

	authRouter := handler.NewAuthRouter(handler.AuthRouterDeps{
		AuthHandler: handler.NewAuthHandler(authService, logger),
		UserHandler: handler.NewUserHandler(services.NewUserService(userRepo), logger),
		Tokens:      tokens,
		Metrics:     handler.NewMetrics(),
		Logger:      logger,
	})

	verifier, err := token.NewBearerVerifier("", accessSecret)
	require.NoError(t, err)

	assessmentService := services.NewAssessmentService(
		repo.NewAssessmentRepository(db),
		repo.NewSessionRepository(db),
		repo.NewAnswerRepository(db),
	)
	assessmentRouter := handler.NewAssessmentRouter(handler.AssessmentRouterDeps{
		AssessmentHandler: handler.NewAssessmentHandler(assessmentService, logger),
		Verifier:          verifier,
		Metrics:           handler.NewMetrics(),
		Logger:            logger,
	})

	authServer := httptest.NewServer(authRouter)
	assessmentServer := httptest.NewServer(assessmentRouter)

	return &TestApp{
		DB:               db,
		DBContainer:      dbContainer,
		AuthServer:       authServer,
		AssessmentServer: assessmentServer,
		Client:           authServer.Client(),
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.AuthServer.Close()
	app.AssessmentServer.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func (app *TestApp) seedAssessment(t *testing.T, id, name string, version int, active bool) {
	t.Helper()
	_, err := app.DB.Exec(
		`INSERT INTO assessments (id, name, version, definition, is_active) VALUES ($1, $2, $3, $4, $5)`,
		id, name, version, `{"questions":[{"id":"q1"}]}`, active,
	)
	require.NoError(t, err)
}

// call sends body as JSON with an optional bearer token and decodes the JSON reply.
func (app *TestApp) call(t *testing.T, method, url, bearer string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

// register creates an account and returns its access and refresh tokens.
func (app *TestApp) register(t *testing.T, email string) (string, string) {
	t.Helper()
	status, body := app.call(t, http.MethodPost, app.AuthServer.URL+"/auth/register", "",
		map[string]string{"email": email, "password": "pw123456"})
	require.Equal(t, http.StatusCreated, status, "register: %v", body)
	return body["accessToken"].(string), body["refreshToken"].(string)
}
