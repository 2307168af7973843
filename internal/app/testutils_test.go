package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/auth"
	"github.com/metinatakli/movie-catalog/internal/catalog"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/metinatakli/movie-catalog/internal/mocks"
	"github.com/metinatakli/movie-catalog/internal/validator"
)

const (
	testBaseUrl = "http://localhost:8080"
	testSecret  = "0123456789abcdef0123456789abcdef"
)

func newTestApplication(opts ...func(*Application)) *Application {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app := &Application{
		config:    Config{Env: "test", BaseUrl: testBaseUrl},
		logger:    logger,
		validator: validator.NewValidator(),
		posters:   &mocks.MockPosterStore{},
	}

	withAuth(&mocks.MockUserRepo{}, &mocks.MockRefreshTokenRepo{}, false)(app)
	withCatalog(&mocks.MockMovieRepo{}, &mocks.MockPosterStore{})(app)

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func withAuth(users domain.UserRepository, tokens domain.RefreshTokenRepository, rotate bool) func(*Application) {
	return func(app *Application) {
		app.auth = auth.NewService(
			app.logger,
			users,
			auth.NewRefreshTokenStore(tokens, 24*time.Hour),
			auth.NewTokenIssuer(testSecret, 15*time.Minute),
			rotate,
		)
	}
}

func withCatalog(movies domain.MovieRepository, posters domain.PosterStore) func(*Application) {
	return func(app *Application) {
		app.posters = posters
		app.catalog = catalog.NewService(app.logger, movies, posters, nil, testBaseUrl)
	}
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(method, url, bytes.NewReader(jsonData))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

type testPoster struct {
	name    string
	content string
}

// executeMovieFormRequest builds a multipart request with the movie encoded
// as JSON in the "movie" part and an optional poster in the "file" part.
func executeMovieFormRequest(t *testing.T, method, url string, movie any, poster *testPoster) (*httptest.ResponseRecorder, *http.Request) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if movie != nil {
		movieJSON, err := json.Marshal(movie)
		if err != nil {
			t.Fatal(err)
		}

		err = mw.WriteField("movie", string(movieJSON))
		if err != nil {
			t.Fatal(err)
		}
	}

	if poster != nil {
		part, err := mw.CreateFormFile("file", poster.name)
		if err != nil {
			t.Fatal(err)
		}

		_, err = part.Write([]byte(poster.content))
		if err != nil {
			t.Fatal(err)
		}
	}

	err := mw.Close()
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(method, url, &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	return w, r
}

// authenticate signs an access token for userId with the application's
// issuer and attaches it to r.
func authenticate(t *testing.T, app *Application, r *http.Request, userId int) *http.Request {
	token, err := app.auth.Issuer().Mint(&domain.User{ID: userId})
	if err != nil {
		t.Fatalf("Failed to mint access token: %v", err)
	}

	r.Header.Set("Authorization", "Bearer "+token.Token)

	return r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
