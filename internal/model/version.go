// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file wraps semantic version handling for unit versions.
package model

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// CanonicalVersion validates a semantic version ("1", "1.2", "v1.2.3",
// "1.2.3-rc.1") and returns it in canonical "vMAJOR.MINOR.PATCH" form,
// padding missing components with zero.
func CanonicalVersion(v string) (string, error) {
	raw := strings.TrimSpace(v)
	if raw == "" {
		return "", fmt.Errorf("version is empty")
	}
	if !strings.HasPrefix(raw, "v") {
		raw = "v" + raw
	}
	if !semver.IsValid(raw) {
		return "", fmt.Errorf("version %q is not a semantic version", v)
	}
	return semver.Canonical(raw), nil
}

// CompareVersions compares two versions component-wise. Invalid versions
// sort before valid ones.
func CompareVersions(a, b string) int {
	ca, errA := CanonicalVersion(a)
	cb, errB := CanonicalVersion(b)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	return semver.Compare(ca, cb)
}
