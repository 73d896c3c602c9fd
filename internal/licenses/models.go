package licenses

import (
	"bytes"
	"encoding/json"
)

// Optional is a string that may be absent. The licensing API encodes absence
// as an empty string; the portal's own JSON encodes it as null.
type Optional struct {
	value string
	valid bool
}

// Some returns a present value.
func Some(v string) Optional {
	return Optional{value: v, valid: true}
}

// None returns an absent value.
func None() Optional {
	return Optional{}
}

// FromWire maps the API's empty-string sentinel to an absent value.
func FromWire(s string) Optional {
	if s == "" {
		return None()
	}
	return Some(s)
}

// Get returns the value and whether it is present.
func (o Optional) Get() (string, bool) {
	return o.value, o.valid
}

// Valid reports whether the value is present.
func (o Optional) Valid() bool {
	return o.valid
}

// Value returns the value, or "" when absent.
func (o Optional) Value() string {
	return o.value
}

// Wire returns the API encoding: "" when absent.
func (o Optional) Wire() string {
	if !o.valid {
		return ""
	}
	return o.value
}

// Equal reports whether both values are absent or both hold the same string.
func (o Optional) Equal(other Optional) bool {
	return o.valid == other.valid && o.value == other.value
}

func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Optional) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*o = None()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*o = FromWire(s)
	return nil
}

// License is a partner license as held in the portal state. Records are
// replaced wholesale on every receipt and never modified in place.
type License struct {
	LicenseID  int64    `json:"licenseId"`
	LicenseKey string   `json:"licenseKey"`
	IssuedAt   string   `json:"issuedAt"`
	AttachedAt Optional `json:"attachedAt"`
	RevokedAt  Optional `json:"revokedAt"`
	Domain     Optional `json:"domain"`
	Product    string   `json:"product"`
	Username   string   `json:"username"`
	BlogID     int64    `json:"blogId"`
}

// IsAttached reports whether the license has ever been attached to a site.
func (l License) IsAttached() bool {
	return l.AttachedAt.Valid()
}

// IsRevoked reports whether the license has been revoked.
func (l License) IsRevoked() bool {
	return l.RevokedAt.Valid()
}

// HasDomain reports whether the license is bound to a domain.
func (l License) HasDomain() bool {
	return l.Domain.Valid()
}

// APILicense is a license record as returned by the licensing endpoint.
type APILicense struct {
	LicenseID  int64  `json:"license_id"`
	LicenseKey string `json:"license_key"`
	IssuedAt   string `json:"issued_at"`
	AttachedAt string `json:"attached_at"`
	RevokedAt  string `json:"revoked_at"`
	Domain     string `json:"domain"`
	Product    string `json:"product"`
	Username   string `json:"username"`
	BlogID     int64  `json:"blog_id"`
}
