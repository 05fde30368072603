package domain

// UserType distinguishes the account roles supported by the site.
type UserType string

const (
	UserDonor     UserType = "doador"
	UserAdmin     UserType = "admin"
	UserVolunteer UserType = "voluntario"
)

// User is a registered account. PasswordHash holds a bcrypt hash; the
// plaintext never reaches the store.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Type         UserType
	Status       string
	Phone        string
	CEP          string
	Address      string
	City         string
	RegisteredAt string
}
