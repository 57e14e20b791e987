package models

import (
	"fmt"
	"time"
)

// Classification partitions the record set by compliance status.
// Every record is exactly one of Clean, Violator, or Banned.
type Classification string

const (
	Clean    Classification = "clean"
	Violator Classification = "violator"
	Banned   Classification = "banned"
)

// Violation type values. The source system overloads a single field with
// sentinel values; the two ban values are distinguished from all other
// non-empty values as a ban, not a mere violation. Classification happens
// here so call sites never duplicate the string comparisons.
const (
	ViolationMinorInfraction = "Minor Infraction"
	ViolationMajor           = "Major Violation"
	ViolationSecurityBreach  = "Security Breach"
	ViolationContraband      = "Contraband"
	ViolationBehavioral      = "Behavioral"

	ViolationBanned       = "Banned"
	ViolationPermanentBan = "Permanent Ban"
)

// IsBanValue reports whether a violation type value denotes a ban.
func IsBanValue(violationType string) bool {
	return violationType == ViolationBanned || violationType == ViolationPermanentBan
}

// Classify returns the record's compliance class:
// banned iff ViolationType is a ban value, violator iff it is any other
// non-empty value, clean otherwise.
func (r *VisitorRecord) Classify() Classification {
	switch {
	case IsBanValue(r.ViolationType):
		return Banned
	case r.ViolationType != "":
		return Violator
	default:
		return Clean
	}
}

// IsBanned reports whether the record currently carries a ban annotation.
func (r *VisitorRecord) IsBanned() bool {
	return r.Classify() == Banned
}

// ApplyViolation overwrites the compliance annotation. Recording a non-ban
// violation on a banned record downgrades the ban; that is a deliberate
// administrative override, not an error. Time-tracking fields are untouched.
func (r *VisitorRecord) ApplyViolation(violationType, details string, now time.Time) {
	r.ViolationType = violationType
	r.ViolationDetails = details
	r.UpdatedAt = now
}

// ApplyClearViolation clears the compliance annotation to empty. Un-banning
// and un-violating are both implemented as this clear.
func (r *VisitorRecord) ApplyClearViolation(now time.Time) {
	r.ViolationType = ""
	r.ViolationDetails = ""
	r.UpdatedAt = now
}

// ApplyBan annotates the record as banned for the given duration and reason.
func (r *VisitorRecord) ApplyBan(duration, reason string, now time.Time) {
	r.ViolationType = ViolationBanned
	r.ViolationDetails = fmt.Sprintf("Duration: %s. Reason: %s", duration, reason)
	r.UpdatedAt = now
}
