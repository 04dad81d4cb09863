package dto

// TokenPair is the result of a login or refresh: a fresh access token
// plus the rotated refresh token the handler delivers via cookie.
// ExpiresIn is the access token lifetime in whole seconds.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}
