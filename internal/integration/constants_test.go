package integration_test

const (
	TestUserUsername = "freddie"
	TestUserPassword = "bohemian-rhapsody"

	TestAuthSecret = "integration-secret-0123456789abcdef"

	TestMovieTitle       = "Alien"
	TestMovieDirector    = "Ridley Scott"
	TestMovieStudio      = "20th Century Fox"
	TestMovieReleaseYear = 1979
	TestMoviePoster      = "alien.jpg"
	TestMoviePosterBytes = "jpeg bytes"
)

var (
	TestMovieCast = []string{"Sigourney Weaver", "Tom Skerritt"}
)
