package types

const (
	ContextUserKey      = "user"
	ContextRequestIDKey = "request_id"

	TokenCookieName = "token"
)

type UserResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

type ProfileResponse struct {
	UserResponse
	Bio       string `json:"bio"`
	Portfolio string `json:"portfolio"`
	Whatsapp  string `json:"whatsapp"`
	Gender    string `json:"gender"`
	Age       *int   `json:"age"`
}
