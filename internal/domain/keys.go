package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserRole  CtxKey = "Role"
)

// Account roles stored in users.role.
const (
	RoleCandidate = "candidate"
	RoleHR        = "hr"
	RoleAdmin     = "admin"
)
