// Package repository implements PostgreSQL persistence for the onboarding
// domain records.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/onboarding/internal/logger"
	"github.com/jonesrussell/onboarding/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// EmployeeRepository persists employees.
type EmployeeRepository struct {
	db     *sql.DB
	logger logger.Logger
}

// NewEmployeeRepository creates an employee repository.
func NewEmployeeRepository(db *sql.DB, log logger.Logger) *EmployeeRepository {
	return &EmployeeRepository{
		db:     db,
		logger: log,
	}
}

const employeeColumns = "id, first_name, last_name, email, department, start_date, status, created_at, updated_at"

// Create inserts a new employee, assigning an ID and timestamps.
func (r *EmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	if employee.ID == uuid.Nil {
		employee.ID = uuid.New()
	}
	if employee.Status == "" {
		employee.Status = models.StatusPending
	}
	now := time.Now().UTC()
	employee.CreatedAt = now
	employee.UpdatedAt = now

	query := `
		INSERT INTO employees (id, first_name, last_name, email, department, start_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		employee.ID, employee.FirstName, employee.LastName, employee.Email,
		nullString(employee.Department), employee.StartDate, employee.Status,
		employee.CreatedAt, employee.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create employee",
			logger.String("email", employee.Email),
			logger.Error(err),
		)
		return fmt.Errorf("insert employee: %w", err)
	}

	return nil
}

// GetByID fetches a single employee.
func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	employee, err := scanEmployee(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("Failed to get employee",
			logger.String("employee_id", id.String()),
			logger.Error(err),
		)
		return nil, fmt.Errorf("select employee: %w", err)
	}

	return employee, nil
}

// List returns all employees, newest first.
func (r *EmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list employees", logger.Error(err))
		return nil, fmt.Errorf("select employees: %w", err)
	}
	defer rows.Close()

	employees := make([]models.Employee, 0)
	for rows.Next() {
		employee, scanErr := scanEmployee(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan employee: %w", scanErr)
		}
		employees = append(employees, *employee)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate employees: %w", rowsErr)
	}

	return employees, nil
}

// Update rewrites the mutable fields of an employee.
func (r *EmployeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	employee.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE employees
		SET first_name = $1, last_name = $2, email = $3, department = $4,
		    start_date = $5, status = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := r.db.ExecContext(ctx, query,
		employee.FirstName, employee.LastName, employee.Email,
		nullString(employee.Department), employee.StartDate, employee.Status,
		employee.UpdatedAt, employee.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update employee",
			logger.String("employee_id", employee.ID.String()),
			logger.Error(err),
		)
		return fmt.Errorf("update employee: %w", err)
	}

	return checkAffected(result)
}

// Delete removes an employee and, via cascade, their documents and tasks.
func (r *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete employee",
			logger.String("employee_id", id.String()),
			logger.Error(err),
		)
		return fmt.Errorf("delete employee: %w", err)
	}

	return checkAffected(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*models.Employee, error) {
	var (
		employee   models.Employee
		department sql.NullString
	)
	err := row.Scan(
		&employee.ID,
		&employee.FirstName,
		&employee.LastName,
		&employee.Email,
		&department,
		&employee.StartDate,
		&employee.Status,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	employee.Department = department.String
	return &employee, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func checkAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
