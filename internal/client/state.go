package client

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jmuiruri/staffhub/internal/domain/employee"
)

// How long an alert stays visible.
const alertVisibleFor = 5 * time.Second

type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "error"
)

type Alert struct {
	Message string
	Kind    AlertKind
	shownAt time.Time
}

var ErrSubmitInFlight = errors.New("a submit is already in flight")

// App holds the authoritative copy of the list fetched from the server plus
// the transient view state around it. The filtered view is always derived,
// never stored.
type App struct {
	client *Client

	mu         sync.Mutex
	employees  []employee.Employee
	searchTerm string
	loading    bool
	submitting bool
	editorOpen bool
	editing    *employee.Employee
	alert      *Alert

	now func() time.Time
}

func NewApp(c *Client) *App {
	return &App{
		client: c,
		now:    time.Now,
	}
}

// Refresh replaces the local list with the server's. Called on load and after
// every mutation; there is no optimistic patching.
func (a *App) Refresh(ctx context.Context) error {
	a.mu.Lock()
	a.loading = true
	a.mu.Unlock()

	employees, err := a.client.ListEmployees(ctx, "")

	a.mu.Lock()
	defer a.mu.Unlock()

	a.loading = false

	if err != nil {
		a.showAlertLocked("Failed to fetch employees", AlertError)
		return err
	}

	a.employees = employees

	return nil
}

// Filter is a pure projection of (list, term): case-insensitive substring
// match on name, email, or position. The input slice is never mutated.
func Filter(employees []employee.Employee, term string) []employee.Employee {
	term = strings.TrimSpace(term)

	if term == "" {
		out := make([]employee.Employee, len(employees))
		copy(out, employees)
		return out
	}

	needle := strings.ToLower(term)
	out := make([]employee.Employee, 0, len(employees))

	for _, e := range employees {
		if strings.Contains(strings.ToLower(e.Name), needle) ||
			strings.Contains(strings.ToLower(e.Email), needle) ||
			strings.Contains(strings.ToLower(e.Position), needle) {
			out = append(out, e)
		}
	}

	return out
}

func (a *App) SetSearchTerm(term string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.searchTerm = term
}

func (a *App) SearchTerm() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.searchTerm
}

// Visible recomputes the filtered view from the current list and search term.
func (a *App) Visible() []employee.Employee {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Filter(a.employees, a.searchTerm)
}

// Total is the size of the unfiltered list.
func (a *App) Total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.employees)
}

func (a *App) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

func (a *App) Submitting() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.submitting
}

// OpenEditor starts editing the given record; nil means "add new".
func (a *App) OpenEditor(editing *employee.Employee) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editorOpen = true
	a.editing = editing
}

func (a *App) CloseEditor() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editorOpen = false
	a.editing = nil
}

func (a *App) EditorOpen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.editorOpen
}

func (a *App) Editing() *employee.Employee {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.editing
}

// Submit creates or updates depending on whether the editor holds a record.
// Further submits are rejected until the in-flight one resolves. On success
// the editor closes and the list is refreshed; on failure the editor stays
// open with its input intact and the alert carries the server's message.
func (a *App) Submit(ctx context.Context, form employee.CreateEmployeeRequest) error {
	a.mu.Lock()

	if a.submitting {
		a.mu.Unlock()
		return ErrSubmitInFlight
	}

	a.submitting = true
	editing := a.editing
	a.mu.Unlock()

	var err error

	if editing != nil {
		_, err = a.client.UpdateEmployee(ctx, editing.ID, employee.UpdateEmployeeRequest(form))
	} else {
		_, err = a.client.CreateEmployee(ctx, form)
	}

	a.mu.Lock()
	a.submitting = false

	if err != nil {
		a.showAlertLocked(submitFailureMessage(err), AlertError)
		a.mu.Unlock()
		return err
	}

	message := "Employee added successfully"
	if editing != nil {
		message = "Employee updated successfully"
	}

	a.showAlertLocked(message, AlertSuccess)
	a.editorOpen = false
	a.editing = nil
	a.mu.Unlock()

	return a.Refresh(ctx)
}

// Delete removes a record and refreshes the list.
func (a *App) Delete(ctx context.Context, id int64) error {
	err := a.client.DeleteEmployee(ctx, id)

	a.mu.Lock()

	if err != nil {
		a.showAlertLocked(submitFailureMessage(err), AlertError)
		a.mu.Unlock()
		return err
	}

	a.showAlertLocked("Employee deleted successfully", AlertSuccess)
	a.mu.Unlock()

	return a.Refresh(ctx)
}

func submitFailureMessage(err error) string {
	var apiErr *APIError

	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return "Operation failed"
}

func (a *App) showAlertLocked(message string, kind AlertKind) {
	a.alert = &Alert{
		Message: message,
		Kind:    kind,
		shownAt: a.now(),
	}
}

// ActiveAlert returns the current alert, or nil once its visible window has
// passed.
func (a *App) ActiveAlert() *Alert {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.alert == nil {
		return nil
	}

	if a.now().Sub(a.alert.shownAt) >= alertVisibleFor {
		a.alert = nil
		return nil
	}

	alert := *a.alert
	return &alert
}
