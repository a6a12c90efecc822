package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jmuiruri/staffhub/internal/domain/employee"
)

// EmployeesRepo is a mutex-guarded in-memory store with the same semantics as
// the SQLite one. Tests use it where spinning up a database is overkill.
type EmployeesRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]employee.Employee
}

func NewEmployeesRepo() *EmployeesRepo {
	return &EmployeesRepo{
		items: make(map[int64]employee.Employee),
	}
}

func (r *EmployeesRepo) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Email == req.Email {
			return employee.Employee{}, employee.ErrDuplicateEmail
		}
	}

	now := time.Now().UTC()
	r.nextID++

	e := employee.Employee{
		ID:        r.nextID,
		Name:      req.Name,
		Email:     req.Email,
		Position:  req.Position,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.items[e.ID] = e

	return e, nil
}

func (r *EmployeesRepo) List(ctx context.Context, search string) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(search)
	output := make([]employee.Employee, 0, len(r.items))

	for _, e := range r.items {
		if needle != "" && !matches(e, needle) {
			continue
		}
		output = append(output, e)
	}

	// newest first, id as tiebreak
	sort.Slice(output, func(i, j int) bool {
		if !output[i].CreatedAt.Equal(output[j].CreatedAt) {
			return output[i].CreatedAt.After(output[j].CreatedAt)
		}
		return output[i].ID > output[j].ID
	})

	return output, nil
}

func matches(e employee.Employee, needle string) bool {
	return strings.Contains(strings.ToLower(e.Name), needle) ||
		strings.Contains(strings.ToLower(e.Email), needle) ||
		strings.Contains(strings.ToLower(e.Position), needle)
}

func (r *EmployeesRepo) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[id]

	if !ok {
		return employee.Employee{}, employee.ErrNotFound
	}

	return e, nil
}

func (r *EmployeesRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	normalized := employee.NormalizeEmail(email)

	for _, e := range r.items {
		if e.Email == normalized {
			return e, nil
		}
	}

	return employee.Employee{}, employee.ErrNotFound
}

func (r *EmployeesRepo) Update(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]

	if !ok {
		return employee.Employee{}, employee.ErrNotFound
	}

	for _, existing := range r.items {
		if existing.ID != id && existing.Email == req.Email {
			return employee.Employee{}, employee.ErrDuplicateEmail
		}
	}

	e.Name = req.Name
	e.Email = req.Email
	e.Position = req.Position
	e.UpdatedAt = time.Now().UTC()

	r.items[id] = e

	return e, nil
}

func (r *EmployeesRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[id]

	if !ok {
		return false, nil
	}

	delete(r.items, id)

	return true, nil
}

func (r *EmployeesRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items), nil
}
