package domain

// KBEntry is one canned answer of the Cloudinho assistant, matched by
// keyword against the visitor's question.
type KBEntry struct {
	ID       string
	Keywords []string
	Answer   string
}
