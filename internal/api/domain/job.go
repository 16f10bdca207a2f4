package domain

// Conventional application status labels. The store does not constrain the
// status column to this set; these are the choices the client offers.
const (
	StatusApplied   = "Applied"
	StatusInterview = "Interview"
	StatusOffer     = "Offer"
	StatusRejected  = "Rejected"
)

// Registration input limits.
const (
	MinUsernameLen = 3
	MinPasswordLen = 6
)
