package models

// Person is an entry of the person directory. A zero ID means the person has
// not been persisted yet.
type Person struct {
	ID        int64  `json:"id" db:"id"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	Address   string `json:"address" db:"address"`
	Gender    string `json:"gender" db:"gender"`
	Email     string `json:"email" db:"email"`
}

// NewPerson creates a transient Person
func NewPerson(firstName, lastName, address, gender, email string) *Person {
	return &Person{
		FirstName: firstName,
		LastName:  lastName,
		Address:   address,
		Gender:    gender,
		Email:     email,
	}
}

// IsPersisted reports whether the store has assigned an identifier
func (p *Person) IsPersisted() bool {
	return p.ID != 0
}
