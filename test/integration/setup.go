package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/threedblog/api/internal/adapters/handler/http"
	repo "github.com/threedblog/api/internal/adapters/repository/postgres"
	"github.com/threedblog/api/internal/core/domain"
	"github.com/threedblog/api/internal/core/ports"
	"github.com/threedblog/api/internal/core/services"
)

const testJWTSecret = "test-secret"

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
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

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
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

// FakeExchanger resolves "valid_code" to a fixed identity and fails
// every other code the way a consumed or forged code would.
type FakeExchanger struct {
	Identity ports.Identity
}

func (f *FakeExchanger) Exchange(_ context.Context, code string) (*ports.Identity, error) {
	if code == "valid_code" {
		identity := f.Identity
		return &identity, nil
	}
	return nil, domain.ErrInvalidGrant
}

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	DBContainer testcontainers.Container
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()

	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	require.NoError(t, applyMigrations(db))

	userRepo := repo.NewUserRepository(db)
	postRepo := repo.NewPostRepository(db)
	bookmarkRepo := repo.NewBookmarkRepository(db)

	exchanger := &FakeExchanger{Identity: ports.Identity{
		GoogleID:   "google-sub-1",
		Email:      "test@example.com",
		Name:       "Test User",
		PictureURL: "https://example.com/pic.png",
	}}

	codec := services.NewTokenCodec([]byte(testJWTSecret))
	authService := services.NewAuthService(userRepo, exchanger, codec)
	userService := services.NewUserService(userRepo)
	postService := services.NewPostService(postRepo, bookmarkRepo)
	bookmarkService := services.NewBookmarkService(postRepo, bookmarkRepo)

	authHandler := handler.NewAuthHandler(authService, false)
	postHandler := handler.NewPostHandler(postService)
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkService)
	memberHandler := handler.NewMemberHandler(userService, postService)
	authMiddleware := handler.NewAuthMiddleware(authService)

	router := handler.NewHandler(authHandler, postHandler, bookmarkHandler, memberHandler, authMiddleware, []string{"*"})

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	t.Helper()
	app.Server.Close()
	require.NoError(t, app.DB.Close())
	require.NoError(t, app.DBContainer.Terminate(context.Background()))
}

func createUser(t *testing.T, db *sql.DB, email string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(
		"INSERT INTO users (google_id, email, name, profile_img) VALUES ($1, $2, $3, $4) RETURNING id",
		"sub-"+email, email, "User "+email, "https://example.com/pic.png",
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func createPost(t *testing.T, db *sql.DB, authorID int64, title string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(
		`INSERT INTO posts (author_id, title, content, field, skills)
		 VALUES ($1, $2, 'content', '["Web"]', '["Go"]') RETURNING id`,
		authorID, title,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// signToken builds tokens in the codec's claim layout so tests can mint
// expired or cross-kind tokens directly.
func signToken(t *testing.T, userID int64, email, kind string, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(userID, 10),
		"email": email,
		"type":  kind,
		"exp":   now.Add(ttl).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}
