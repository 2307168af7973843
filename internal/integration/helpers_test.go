package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog/internal/auth"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/metinatakli/movie-catalog/internal/repository"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp":    {},
	"requestId":    {},
	"accessToken":  {},
	"refreshToken": {},
	"expiresAt":    {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanValue(actual)

	var expected any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanValue(v any) {
	switch v := v.(type) {
	case map[string]any:
		for k := range v {
			if _, ok := keysToIgnore[k]; ok {
				delete(v, k)
				continue
			}
			cleanValue(v[k])
		}
	case []any:
		for _, item := range v {
			cleanValue(item)
		}
	}
}

func truncateUsers(t testing.TB, db *pgxpool.Pool) {
	_, err := db.Exec(context.Background(), "TRUNCATE users, refresh_tokens RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

// truncateMovies empties the movies table and the poster directory.
func truncateMovies(t testing.TB, app *TestApp, posterDir string) {
	_, err := app.DB.Exec(context.Background(), "TRUNCATE movies RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	entries, err := os.ReadDir(posterDir)
	require.NoError(t, err)

	for _, entry := range entries {
		require.NoError(t, os.RemoveAll(filepath.Join(posterDir, entry.Name())))
	}
}

func registerTestUser(t testing.TB, app *TestApp) *auth.Tokens {
	truncateUsers(t, app.DB)

	tokens, err := app.Auth.Register(context.Background(), TestUserUsername, TestUserPassword)
	require.NoError(t, err)

	return tokens
}

func bearer(tokens *auth.Tokens) string {
	return "Bearer " + tokens.AccessToken.Token
}

func defaultTestMovie() domain.MovieDetails {
	return domain.MovieDetails{
		Title:       TestMovieTitle,
		Director:    TestMovieDirector,
		Studio:      TestMovieStudio,
		Cast:        TestMovieCast,
		ReleaseYear: TestMovieReleaseYear,
	}
}

// insertTestMovie stores the poster and the record directly, bypassing the API.
func insertTestMovie(t testing.TB, app *TestApp, details domain.MovieDetails, poster string) *domain.Movie {
	ctx := context.Background()

	err := app.Posters.Write(ctx, domain.PosterFile{
		Name:    poster,
		Content: strings.NewReader(TestMoviePosterBytes),
	})
	require.NoError(t, err)

	movie := domain.NewMovie(details, poster)

	err = repository.NewPostgresMovieRepository(app.DB).Create(ctx, movie)
	require.NoError(t, err)

	return movie
}

func posterExists(t testing.TB, app *TestApp, name string) bool {
	exists, err := app.Posters.Exists(context.Background(), name)
	require.NoError(t, err)

	return exists
}

// movieForm encodes a movie and an optional poster as a multipart body and
// returns it along with its content type.
func movieForm(t testing.TB, movie any, posterName, posterContent string) (io.Reader, string) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	movieJSON, err := json.Marshal(movie)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("movie", string(movieJSON)))

	if posterName != "" {
		part, err := mw.CreateFormFile("file", posterName)
		require.NoError(t, err)

		_, err = part.Write([]byte(posterContent))
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	return &body, mw.FormDataContentType()
}
