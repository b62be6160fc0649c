package domain

import (
	"fmt"
	"strings"
	"time"
)

// Profile holds the fields every identity variant carries.
type Profile struct {
	DisplayName string
	Department  string
	// LastLogin is nil when the session held no timestamp or an unparseable one.
	LastLogin *time.Time
}

// Identity is the signed-in user. It is one of Guest, Member or Admin; the
// variant decides which fields exist, so a guest can never carry a roll number.
type Identity interface {
	Details() Profile
	isIdentity()
}

// Guest is an identity without an institutional roll number. Guests have no issue list.
type Guest struct {
	Profile
}

// Member is an ordinary institutional user who can borrow items.
type Member struct {
	Profile
	RollNumber string
	Degree     string
}

// Admin is an institutional user who manages the inventory.
type Admin struct {
	Profile
	RollNumber string
}

func (g Guest) Details() Profile  { return g.Profile }
func (m Member) Details() Profile { return m.Profile }
func (a Admin) Details() Profile  { return a.Profile }

func (Guest) isIdentity()  {}
func (Member) isIdentity() {}
func (Admin) isIdentity()  {}

// Email derives the member's institutional address from the roll number.
func (m Member) Email(domain string) string {
	return m.RollNumber + "@" + domain
}

// IdentityRecord is the flag-based shape the login flow hands over and the
// session persists.
type IdentityRecord struct {
	Roll       string `json:"roll,omitempty"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Degree     string `json:"degree,omitempty"`
	LastLogin  string `json:"lastLogin,omitempty"`
	IsGuest    bool   `json:"isGuest"`
	IsAdmin    bool   `json:"isAdmin"`
}

// IdentityFromRecord converts a session record into its variant. The guest flag
// wins over the admin flag; a non-guest record must carry a roll number.
func IdentityFromRecord(rec IdentityRecord) (Identity, error) {
	profile := Profile{
		DisplayName: rec.Name,
		Department:  rec.Department,
		LastLogin:   OptionalTimestamp(rec.LastLogin),
	}

	if rec.IsGuest {
		return Guest{Profile: profile}, nil
	}

	roll := strings.TrimSpace(rec.Roll)
	if roll == "" {
		return nil, fmt.Errorf("%w: non-guest record without roll number", ErrInvalidIdentity)
	}

	if rec.IsAdmin {
		return Admin{Profile: profile, RollNumber: roll}, nil
	}
	return Member{Profile: profile, RollNumber: roll, Degree: rec.Degree}, nil
}

// RecordFromIdentity is the inverse of IdentityFromRecord.
func RecordFromIdentity(id Identity) IdentityRecord {
	p := id.Details()
	rec := IdentityRecord{
		Name:       p.DisplayName,
		Department: p.Department,
	}
	if p.LastLogin != nil {
		rec.LastLogin = p.LastLogin.Format(time.RFC3339Nano)
	}

	switch v := id.(type) {
	case Guest:
		rec.IsGuest = true
	case Admin:
		rec.IsAdmin = true
		rec.Roll = v.RollNumber
	case Member:
		rec.Roll = v.RollNumber
		rec.Degree = v.Degree
	}
	return rec
}

// IsGuest reports whether id is the Guest variant.
func IsGuest(id Identity) bool {
	_, ok := id.(Guest)
	return ok
}

// RollNumber returns the roll number of a Member or Admin, or "" for a guest.
func RollNumber(id Identity) string {
	switch v := id.(type) {
	case Member:
		return v.RollNumber
	case Admin:
		return v.RollNumber
	}
	return ""
}
