// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

package names

// Uniquer tracks the sanitized names already claimed within one scope
// (one category, in practice) and disambiguates collisions.
//
// Distinct display names can collapse to the same sanitized form
// ("web-1" and "web.1" both become "web_1"); without disambiguation the
// second resource would silently shadow the first in both the emitted
// configuration and the tracked state.
type Uniquer struct {
	used map[string]bool
}

// NewUniquer returns an empty Uniquer.
func NewUniquer() *Uniquer {
	return &Uniquer{used: make(map[string]bool)}
}

// Claim sanitizes name and reserves the result. If the sanitized form is
// already taken, the provider-assigned id is sanitized and appended with an
// underscore, generalizing the keying rule long used for SSH keys to every
// resource kind.
func (u *Uniquer) Claim(name, providerID string) string {
	key := Sanitize(name)
	if u.used[key] {
		key = key + "_" + Sanitize(providerID)
	}
	u.used[key] = true
	return key
}
