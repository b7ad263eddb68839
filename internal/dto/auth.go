package dto

// AuthResponse carries a freshly issued token pair and the user it belongs to.
type AuthResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refresh_token"`
	User         *UserDTO `json:"user,omitempty"`
}
