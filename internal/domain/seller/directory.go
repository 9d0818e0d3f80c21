package seller

import (
	"context"
)

// Employee is an HR directory record
type Employee struct {
	EmployeeRef int64  `json:"id"`
	DNI         string `json:"dni"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

// EmployeeDirectory looks employees up in the external HR system.
// Implementations return ErrEmployeeNotFound when the employee is absent or
// the directory cannot be reached.
type EmployeeDirectory interface {
	Lookup(ctx context.Context, dni string) (*Employee, error)
}
