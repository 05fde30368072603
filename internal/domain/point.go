package domain

// CollectionPoint is a physical drop-off location for donated items.
type CollectionPoint struct {
	ID          string
	Name        string
	Address     string
	Phone       string
	Email       string
	Hours       string
	Responsible string
	Status      string
}
