package models

// Roles an identity can hold.
const (
	RoleUser   = "user"
	RoleWorker = "worker"
)

// Principal is the authenticated caller, passed explicitly into every
// service operation.
type Principal struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func (p Principal) IsWorker() bool { return p.Role == RoleWorker }
