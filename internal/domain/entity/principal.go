package entity

import "github.com/google/uuid"

// PrincipalKind discriminates which kind of account a token was issued to.
// It is embedded in the signed claims at issuance, so the authorization gate
// never has to guess the account type from the claim shape.
type PrincipalKind string

const (
	// PrincipalUser indicates a regular customer account.
	PrincipalUser PrincipalKind = "user"
	// PrincipalAdmin indicates a back-office operator account.
	PrincipalAdmin PrincipalKind = "admin"
)

// String returns the string representation of the PrincipalKind.
func (k PrincipalKind) String() string {
	return string(k)
}

// IsValid checks if the PrincipalKind is a known value.
func (k PrincipalKind) IsValid() bool {
	switch k {
	case PrincipalUser, PrincipalAdmin:
		return true
	default:
		return false
	}
}

// Identity is the authenticated caller attached to a request by the
// authorization gate. A token carrying an unknown kind yields a zero
// Identity rather than an error, so downstream handlers can decide.
type Identity struct {
	Kind     PrincipalKind // Which account namespace the ID belongs to.
	ID       uuid.UUID     // The account's unique identifier.
	Name     string        // Display name. Set for users.
	Email    string        // Login email. Set for users.
	Username string        // Login username. Set for admins.
}

// IsAdmin reports whether the identity belongs to an admin account.
func (i Identity) IsAdmin() bool {
	return i.Kind == PrincipalAdmin
}

// IsZero reports whether the identity carries no principal at all.
func (i Identity) IsZero() bool {
	return i.Kind == "" && i.ID == uuid.Nil
}
