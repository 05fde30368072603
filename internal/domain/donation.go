package domain

import "time"

// DonationStatus tracks a pledge from confirmation to drop-off.
type DonationStatus string

const (
	DonationAwaitingDropoff DonationStatus = "aguardando_entrega"
	DonationConfirmed       DonationStatus = "confirmada"
)

// Donation records one adoption pledge. It is created exactly once per
// adoption and never mutated afterwards.
type Donation struct {
	ID              string
	Donor           string
	Email           string
	LetterRef       string
	CollectionPoint string
	Status          DonationStatus
	Message         string
	CreatedAt       time.Time
	DeliverBy       time.Time
}
