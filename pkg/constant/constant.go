package constant

const (
	// Token audiences. Access and refresh tokens carry distinct
	// audiences so one kind can never be redeemed as the other.
	AccessTokenAudience  = "access-audience"
	RefreshTokenAudience = "refresh-audience"

	TokenIssuer = "user-management-api"

	RefreshCookieName = "refreshToken"
	APIBasePath       = "/api/v1"

	AdminRoleName   = "admin"
	DefaultRoleName = "user"
)
