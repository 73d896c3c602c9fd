package licenses

// FromAPI maps one wire record onto the internal shape, field by field.
// Missing wire fields come through as zero values or absent optionals.
func FromAPI(r APILicense) License {
	return License{
		LicenseID:  r.LicenseID,
		LicenseKey: r.LicenseKey,
		IssuedAt:   r.IssuedAt,
		AttachedAt: FromWire(r.AttachedAt),
		RevokedAt:  FromWire(r.RevokedAt),
		Domain:     FromWire(r.Domain),
		Product:    r.Product,
		Username:   r.Username,
		BlogID:     r.BlogID,
	}
}

// ToAPI is the inverse of FromAPI.
func ToAPI(l License) APILicense {
	return APILicense{
		LicenseID:  l.LicenseID,
		LicenseKey: l.LicenseKey,
		IssuedAt:   l.IssuedAt,
		AttachedAt: l.AttachedAt.Wire(),
		RevokedAt:  l.RevokedAt.Wire(),
		Domain:     l.Domain.Wire(),
		Product:    l.Product,
		Username:   l.Username,
		BlogID:     l.BlogID,
	}
}

// Normalize maps a wire payload onto internal records, preserving order.
// A nil payload normalizes to an empty, non-nil list.
func Normalize(records []APILicense) []License {
	out := make([]License, 0, len(records))
	for _, r := range records {
		out = append(out, FromAPI(r))
	}
	return out
}
