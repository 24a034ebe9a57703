package domain

// User represents a registered account.
type User struct {
	ID           string
	Name         string
	About        string
	Avatar       string
	Email        string
	PasswordHash string
}
