package domain

// Persona is a personnel record as returned by the backend. JSON tags use
// the backend (wire) vocabulary.
type Persona struct {
	ID         string `json:"id"`
	IDType     string `json:"idType"`
	FirstName  string `json:"firstName"`
	SecondName string `json:"secondName,omitempty"`
	Surname    string `json:"surname"`
	Birthdate  string `json:"birthdate"`
	Gender     string `json:"gender"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	PhotoURL   string `json:"fotoUrl,omitempty"`
}

// WireValues returns the text fields keyed by their wire names.
func (p Persona) WireValues() map[string]string {
	return map[string]string{
		"id":         p.ID,
		"idType":     p.IDType,
		"firstName":  p.FirstName,
		"secondName": p.SecondName,
		"surname":    p.Surname,
		"birthdate":  p.Birthdate,
		"gender":     p.Gender,
		"email":      p.Email,
		"phone":      p.Phone,
	}
}

// FullName joins first name and surname the way the list view shows it.
func (p Persona) FullName() string {
	if p.Surname == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.Surname
}
