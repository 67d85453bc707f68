// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package directus

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the item does not exist, is not published,
// or is not readable with the configured credentials.
var ErrNotFound = errors.New("directus: item not found")

// GatewayError reports a CMS that is unreachable or answered with an
// unexpected status. Status is zero for transport failures.
type GatewayError struct {
	Collection string
	Status     int
	Err        error
}

func (e *GatewayError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("directus: reading %s: status %d: %v", e.Collection, e.Status, e.Err)
	}
	return fmt.Sprintf("directus: reading %s: %v", e.Collection, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
