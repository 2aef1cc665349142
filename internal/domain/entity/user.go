// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a marketplace account.
// A user is created on first successful authentication and moves through the
// approval workflow: pending -> merchant(active) -> merchant(inactive) -> ...
// Admin accounts are provisioned separately and never pass through approval.
type User struct {
	ID          uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email       string    // The user's primary contact email, often used as a login identifier.
	DisplayName string    // The user's public display name.
	WhatsApp    string    // The merchant's contact number for the outbound messaging channel.
	Role        Role      // The account role: admin, merchant, or pending.
	Active      bool      // Whether the merchant account is enabled. Ignored for admins.
	CreatedAt   time.Time // Timestamp of when this user account was created.
	UpdatedAt   time.Time // Timestamp of the last modification to this user's data.
}

// IsAdmin reports whether this user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanPublish reports whether this user may create or edit listings.
// Pending and deactivated merchants cannot publish; admins always can.
func (u *User) CanPublish() bool {
	if u.IsAdmin() {
		return true
	}

	return u.Role == RoleMerchant && u.Active
}
