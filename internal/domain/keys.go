package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserRole  CtxKey = "Role"

	// Request provenance, captured best-effort for the audit trail
	KeyClientIP  CtxKey = "ClientIP"
	KeyUserAgent CtxKey = "UserAgent"
	KeyRequestID CtxKey = "RequestID"
)

// Caller roles
const (
	RoleJobSeeker = "jobseeker"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)
