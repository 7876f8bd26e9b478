package auth

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	// TokenID es el jti del token; vacío en modo dev.
	TokenID string
}
