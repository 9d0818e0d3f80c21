package directory

import (
	"context"

	"go.uber.org/zap"

	"github.com/venta/backend/internal/domain/seller"
)

// seedEmployees is the fixed HR roster served by SimulatedDirectory
var seedEmployees = []seller.Employee{
	{
		EmployeeRef: 1001,
		DNI:         "12345678",
		FirstName:   "Juan",
		LastName:    "Pérez García",
		Email:       "juan.perez@empresa.com",
		Phone:       "987654321",
		Address:     "Av. Los Olivos 123, Lima",
	},
	{
		EmployeeRef: 1002,
		DNI:         "87654321",
		FirstName:   "María",
		LastName:    "López Sánchez",
		Email:       "maria.lopez@empresa.com",
		Phone:       "987654322",
		Address:     "Av. La Marina 456, Lima",
	},
}

// SimulatedDirectory is an in-process employee directory used in development
// and tests. Its contents never change after construction.
type SimulatedDirectory struct {
	employees map[string]seller.Employee
	logger    *zap.Logger
}

// NewSimulatedDirectory creates a directory seeded with the default roster
func NewSimulatedDirectory(logger *zap.Logger) *SimulatedDirectory {
	return NewSimulatedDirectoryWith(logger, seedEmployees...)
}

// NewSimulatedDirectoryWith creates a directory holding exactly the given employees
func NewSimulatedDirectoryWith(logger *zap.Logger, employees ...seller.Employee) *SimulatedDirectory {
	if logger == nil {
		logger = zap.NewNop()
	}
	byDNI := make(map[string]seller.Employee, len(employees))
	for _, e := range employees {
		byDNI[e.DNI] = e
	}
	return &SimulatedDirectory{employees: byDNI, logger: logger}
}

// Lookup returns a copy of the seeded employee for dni
func (d *SimulatedDirectory) Lookup(ctx context.Context, dni string) (*seller.Employee, error) {
	if err := ctx.Err(); err != nil {
		d.logger.Warn("employee lookup cancelled", zap.String("dni", dni), zap.Error(err))
		return nil, seller.NewEmployeeNotFoundError(dni)
	}

	e, ok := d.employees[dni]
	if !ok {
		d.logger.Debug("employee not in simulated directory", zap.String("dni", dni))
		return nil, seller.NewEmployeeNotFoundError(dni)
	}
	return &e, nil
}

var _ seller.EmployeeDirectory = (*SimulatedDirectory)(nil)
