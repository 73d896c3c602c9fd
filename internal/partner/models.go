package partner

import (
	"strconv"
	"time"
)

// KeyID identifies a partner API key. NoKey means no key is active.
type KeyID int64

const NoKey KeyID = 0

// IsNil reports whether the key is absent.
func (k KeyID) IsNil() bool {
	return k == NoKey
}

func (k KeyID) String() string {
	return strconv.FormatInt(int64(k), 10)
}

// ParseKeyID parses a decimal key id. Empty input parses to NoKey.
func ParseKeyID(s string) (KeyID, error) {
	if s == "" {
		return NoKey, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return NoKey, err
	}
	return KeyID(v), nil
}

// Key is a partner API key as known to the partner portal.
type Key struct {
	ID        KeyID     `json:"id"`
	PartnerID int64     `json:"partner_id"`
	Name      string    `json:"name"`
	Disabled  bool      `json:"disabled"`
	CreatedAt time.Time `json:"created_at"`
}
