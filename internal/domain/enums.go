package domain

import "strings"

// PollutionType is the kind of pollution a citizen reports.
type PollutionType string

const (
	PollutionTypeSmoke PollutionType = "Smoke"
	PollutionTypeNoise PollutionType = "Noise"
	PollutionTypeLeak  PollutionType = "Leak"
	PollutionTypeOther PollutionType = "Other"
)

// PollutionTypes lists every known pollution type in display order.
var PollutionTypes = []PollutionType{
	PollutionTypeSmoke,
	PollutionTypeNoise,
	PollutionTypeLeak,
	PollutionTypeOther,
}

func (p PollutionType) String() string { return string(p) }

func (p PollutionType) IsValid() bool {
	switch p {
	case PollutionTypeSmoke, PollutionTypeNoise, PollutionTypeLeak, PollutionTypeOther:
		return true
	}
	return false
}

// ParsePollutionType matches s case-insensitively against the known types
// and returns the canonical value.
func ParsePollutionType(s string) (PollutionType, bool) {
	s = strings.TrimSpace(s)
	for _, p := range PollutionTypes {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	return "", false
}

// AccountRole represents the authorization level of an account.
type AccountRole string

const (
	AccountRoleCitizen AccountRole = "citizen"
	AccountRoleTraffic AccountRole = "traffic"
	AccountRoleAdmin   AccountRole = "admin"
)

func (r AccountRole) String() string { return string(r) }

func (r AccountRole) IsValid() bool {
	switch r {
	case AccountRoleCitizen, AccountRoleTraffic, AccountRoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role may review submitted reports.
func (r AccountRole) IsStaff() bool {
	return r == AccountRoleTraffic || r == AccountRoleAdmin
}
