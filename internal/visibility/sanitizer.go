// Package visibility guarantees that recruiter-private fields never reach a
// job-seeker caller. It is two independent layers: a pure projection
// (ProjectForRole) applied when a response is assembled, and a recursive
// leak guard (AssertNoLeak) run over the finished payload. A missed
// projection at one call site is still caught by the second layer.
package visibility

import (
	"encoding/json"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

// forbiddenKeys are the recruiter-private field names that must never
// appear, at any nesting depth, in a job-seeker-facing payload. Both wire
// spellings are checked.
var forbiddenKeys = map[string]bool{
	"recruiter_notes": true,
	"internal_notes":  true,
	"recruiterNotes":  true,
	"internalNotes":   true,
}

// PartyView is the field-limited view of a related party (recruiter or
// candidate) safe to show the other side: display fields only.
type PartyView struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// SeekerInteractionView is the reduced projection of an interaction record
// for job-seeker callers. Recruiter-private fields have no slot here at all.
type SeekerInteractionView struct {
	ID                  string             `json:"id"`
	Status              string             `json:"status"`
	AppliedAt           time.Time          `json:"applied_at"`
	LastActivityAt      time.Time          `json:"last_activity_at"`
	ViewedAt            *time.Time         `json:"viewed_at,omitempty"`
	WithdrawnAt         *time.Time         `json:"withdrawn_at,omitempty"`
	ArchivedByJobSeeker bool               `json:"archived_by_job_seeker"`
	Job                 *domain.JobSummary `json:"job,omitempty"`
	Recruiter           *PartyView         `json:"recruiter,omitempty"`
}

// ProjectForRole returns the record unmodified for recruiter and admin
// callers, and the reduced SeekerInteractionView for job seekers.
func ProjectForRole(rec *domain.InteractionRecord, role string) interface{} {
	if rec == nil {
		return nil
	}
	if role != domain.RoleJobSeeker {
		return rec
	}
	view := &SeekerInteractionView{
		ID:                  rec.ID,
		Status:              rec.Status,
		AppliedAt:           rec.AppliedAt,
		LastActivityAt:      rec.LastActivityAt,
		ViewedAt:            rec.ViewedAt,
		WithdrawnAt:         rec.WithdrawnAt,
		ArchivedByJobSeeker: rec.ArchivedByJobSeeker,
	}
	if rec.JobID != nil && rec.JobTitle != nil {
		js := domain.JobSummary{ID: *rec.JobID, Title: *rec.JobTitle}
		if rec.CompanyName != nil {
			js.Company = *rec.CompanyName
		}
		view.Job = &js
	}
	if rec.RecruiterName != nil || rec.RecruiterEmail != nil {
		pv := &PartyView{}
		if rec.RecruiterName != nil {
			pv.Name = *rec.RecruiterName
		}
		if rec.RecruiterEmail != nil {
			pv.Email = *rec.RecruiterEmail
		}
		view.Recruiter = pv
	}
	return view
}

// ProjectList projects a slice of records for the given role.
func ProjectList(recs []domain.InteractionRecord, role string) []interface{} {
	out := make([]interface{}, 0, len(recs))
	for i := range recs {
		out = append(out, ProjectForRole(&recs[i], role))
	}
	return out
}

// AssertNoLeak walks the full outbound payload, including arrays and nested
// objects, and returns a SecurityViolation if a forbidden key is present
// anywhere for a job-seeker caller. It serializes the payload the same way
// the transport will, so struct tags and omitempty behave identically.
func AssertNoLeak(payload interface{}, role string) error {
	if role != domain.RoleJobSeeker || payload == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return apperror.Internal(fmt.Errorf("visibility: marshal for leak scan: %w", err))
	}
	return ScanJSON(raw)
}

// ScanJSON runs the recursive forbidden-key scan over raw JSON. Split out so
// the response middleware can guard bytes already serialized by the handler.
func ScanJSON(raw []byte) error {
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		// Non-JSON payloads carry no keys to leak.
		return nil
	}
	if key := findForbiddenKey(decoded); key != "" {
		return apperror.SecurityViolation(fmt.Sprintf("recruiter-private field %q present in job-seeker response", key))
	}
	return nil
}

func findForbiddenKey(node interface{}) string {
	switch v := node.(type) {
	case map[string]interface{}:
		for key, child := range v {
			if forbiddenKeys[key] {
				return key
			}
			if found := findForbiddenKey(child); found != "" {
				return found
			}
		}
	case []interface{}:
		for _, child := range v {
			if found := findForbiddenKey(child); found != "" {
				return found
			}
		}
	}
	return ""
}
