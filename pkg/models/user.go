package models

// User is the signed-in account. All fields default to the empty string.
type User struct {
	Name     string `json:"name"`
	Token    string `json:"token"`
	Email    string `json:"email"`
	ImageURL string `json:"imageUrl"`
}

// DisplayName prefers the name and falls back to the email
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
