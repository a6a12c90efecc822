package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmuiruri/staffhub/internal/domain/employee"
	"github.com/jmuiruri/staffhub/internal/observability"
)

// Fixed-width layout so stored timestamps sort lexicographically; RFC3339Nano
// trims trailing zeros and breaks ORDER BY on the text column.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type EmployeesRepo struct {
	db   *sql.DB
	prom *observability.Prom
}

// constructor function

func NewEmployeesRepo(db *sql.DB, prom *observability.Prom) *EmployeesRepo {
	return &EmployeesRepo{
		db:   db,
		prom: prom,
	}
}

func (r *EmployeesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// isUniqueViolation reports whether err is the SQLite UNIQUE constraint error
// on the employees email column.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *EmployeesRepo) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	now := time.Now().UTC()

	var id int64

	err := r.observe("employees.create", func() error {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO employees(name, email, position, created_at, updated_at) VALUES(?,?,?,?,?)`,
			req.Name, req.Email, req.Position, now.Format(timeLayout), now.Format(timeLayout))

		if err != nil {
			return err
		}

		id, err = res.LastInsertId()

		return err
	})

	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrDuplicateEmail
		}
		return employee.Employee{}, err
	}

	// re-fetch so callers see exactly what the store persisted
	return r.GetByID(ctx, id)
}

func (r *EmployeesRepo) List(ctx context.Context, search string) ([]employee.Employee, error) {
	query := `SELECT id, name, email, position, created_at, updated_at FROM employees`

	var args []interface{}

	if search != "" {
		query += ` WHERE name LIKE ? OR email LIKE ? OR position LIKE ?`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	query += ` ORDER BY created_at DESC, id DESC`

	var output []employee.Employee

	err := r.observe("employees.list", func() error {
		rows, err := r.db.QueryContext(ctx, query, args...)

		if err != nil {
			return err
		}

		defer rows.Close()

		output = make([]employee.Employee, 0)

		for rows.Next() {
			e, err := scanEmployee(rows.Scan)

			if err != nil {
				return err
			}

			output = append(output, e)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}

func (r *EmployeesRepo) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	var e employee.Employee

	err := r.observe("employees.get_by_id", func() error {
		row := r.db.QueryRowContext(ctx,
			`SELECT id, name, email, position, created_at, updated_at FROM employees WHERE id = ?`, id)

		var scanErr error
		e, scanErr = scanEmployee(row.Scan)
		return scanErr
	})

	if errors.Is(err, sql.ErrNoRows) {
		return employee.Employee{}, employee.ErrNotFound
	}

	if err != nil {
		return employee.Employee{}, err
	}

	return e, nil
}

func (r *EmployeesRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	var e employee.Employee

	err := r.observe("employees.get_by_email", func() error {
		row := r.db.QueryRowContext(ctx,
			`SELECT id, name, email, position, created_at, updated_at FROM employees WHERE email = ?`,
			employee.NormalizeEmail(email))

		var scanErr error
		e, scanErr = scanEmployee(row.Scan)
		return scanErr
	})

	if errors.Is(err, sql.ErrNoRows) {
		return employee.Employee{}, employee.ErrNotFound
	}

	if err != nil {
		return employee.Employee{}, err
	}

	return e, nil
}

func (r *EmployeesRepo) Update(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	now := time.Now().UTC()

	err := r.observe("employees.update", func() error {
		_, err := r.db.ExecContext(ctx,
			`UPDATE employees SET name = ?, email = ?, position = ?, updated_at = ? WHERE id = ?`,
			req.Name, req.Email, req.Position, now.Format(timeLayout), id)

		return err
	})

	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrDuplicateEmail
		}
		return employee.Employee{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *EmployeesRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var removed bool

	err := r.observe("employees.delete", func() error {
		res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)

		if err != nil {
			return err
		}

		affected, err := res.RowsAffected()

		if err != nil {
			return err
		}

		removed = affected > 0

		return nil
	})

	if err != nil {
		return false, err
	}

	return removed, nil
}

func (r *EmployeesRepo) Count(ctx context.Context) (int, error) {
	var count int

	err := r.observe("employees.count", func() error {
		return r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count)
	})

	if err != nil {
		return 0, err
	}

	return count, nil
}

// scanEmployee reads one row; timestamps are persisted as RFC3339 text.
func scanEmployee(scan func(dest ...interface{}) error) (employee.Employee, error) {
	var e employee.Employee
	var createdAt, updatedAt string

	err := scan(&e.ID, &e.Name, &e.Email, &e.Position, &createdAt, &updatedAt)

	if err != nil {
		return employee.Employee{}, err
	}

	e.CreatedAt, err = time.Parse(timeLayout, createdAt)

	if err != nil {
		return employee.Employee{}, err
	}

	e.UpdatedAt, err = time.Parse(timeLayout, updatedAt)

	if err != nil {
		return employee.Employee{}, err
	}

	return e, nil
}
