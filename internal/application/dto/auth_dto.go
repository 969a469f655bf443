package dto

// RegisterRequest body for POST /api/auth/register. Registering creates the
// shop alongside the user and seeds its default price list.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	ShopName string `json:"shop_name"`
	PAN      string `json:"pan"`
}

// LoginRequest body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by register and login. The backend also
// sets httponly cookies; the token is kept for clients that cannot hold a
// cookie jar across restarts.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
