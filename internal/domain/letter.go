package domain

// LetterStatus is the availability of a wish letter on the varal.
type LetterStatus string

const (
	LetterAvailable LetterStatus = "disponivel"
	LetterAdopted   LetterStatus = "adotada"
)

// Letter is a child's wish letter ("cartinha") eligible for adoption.
// Code carries the external letter code printed on the physical card;
// ID is the record identifier assigned by the store.
type Letter struct {
	ID     string
	Code   string
	Name   string
	Age    string
	Wish   string
	Image  string
	Status LetterStatus
}

// Available reports whether the letter can still be adopted.
func (l *Letter) Available() bool {
	return l.Status != LetterAdopted
}
