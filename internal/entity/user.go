package entity

// UserLoginData is what the bearer-token middleware stores in fiber locals
// under "user".
type UserLoginData struct {
	ID       string
	Username string
	Email    string
}
