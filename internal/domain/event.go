package domain

// Event is a charity event published on the site. Dates are kept as the
// store returns them; formatting belongs to the presentation layer.
type Event struct {
	ID          string
	Name        string
	Description string
	StartDate   string
	EndDate     string
	Location    string
	Status      string
	Responsible string
	Image       string
	Highlight   bool
}
