package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmuiruri/staffhub/internal/domain/employee"
)

// EmployeesStore is the slice of the repository the handlers actually call.
// List responses report len(data) directly, so the repos' Count stays off it.
type EmployeesStore interface {
	Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error)
	List(ctx context.Context, search string) ([]employee.Employee, error)
	GetByID(ctx context.Context, id int64) (employee.Employee, error)
	GetByEmail(ctx context.Context, email string) (employee.Employee, error)
	Update(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (employee.Employee, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type EmployeesHandler struct {
	repo EmployeesStore
}

func NewEmployeesHandler(repo EmployeesStore) *EmployeesHandler {
	return &EmployeesHandler{repo: repo}
}

func (h *EmployeesHandler) ListEmployees(ctx *gin.Context) {
	search := ctx.Query("search")

	employees, err := h.repo.List(ctx.Request.Context(), search)

	if err != nil {
		RespondInternal(ctx, "Failed to fetch employees", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(employees),
		"data":    employees,
	})
}

func (h *EmployeesHandler) GetEmployeeByID(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		return
	}

	e, err := h.repo.GetByID(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			RespondNotFound(ctx, "Employee not found")
			return
		}
		RespondInternal(ctx, "Failed to fetch employee", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    e,
	})
}

func (h *EmployeesHandler) CreateEmployee(ctx *gin.Context) {
	var req employee.CreateEmployeeRequest

	if !BindJSON(ctx, &req) {
		return
	}

	req.Normalize()

	if violations := req.Validate(); len(violations) > 0 {
		RespondValidation(ctx, violations)
		return
	}

	// best-effort pre-check; the unique constraint is the final authority
	_, err := h.repo.GetByEmail(ctx.Request.Context(), req.Email)

	if err == nil {
		RespondBadRequest(ctx, "Email already exists")
		return
	}

	if !errors.Is(err, employee.ErrNotFound) {
		RespondInternal(ctx, "Failed to create employee", err)
		return
	}

	created, err := h.repo.Create(ctx.Request.Context(), req)

	if err != nil {
		if errors.Is(err, employee.ErrDuplicateEmail) {
			RespondBadRequest(ctx, "Email already exists")
			return
		}
		RespondInternal(ctx, "Failed to create employee", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Employee created successfully",
		"data":    created,
	})
}

func (h *EmployeesHandler) UpdateEmployee(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		return
	}

	var req employee.UpdateEmployeeRequest

	if !BindJSON(ctx, &req) {
		return
	}

	req.Normalize()

	if violations := req.Validate(); len(violations) > 0 {
		RespondValidation(ctx, violations)
		return
	}

	existing, err := h.repo.GetByID(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			RespondNotFound(ctx, "Employee not found")
			return
		}
		RespondInternal(ctx, "Failed to update employee", err)
		return
	}

	// re-check uniqueness only when the email actually changes
	if req.Email != existing.Email {
		owner, err := h.repo.GetByEmail(ctx.Request.Context(), req.Email)

		if err == nil && owner.ID != id {
			RespondBadRequest(ctx, "Email already exists")
			return
		}

		if err != nil && !errors.Is(err, employee.ErrNotFound) {
			RespondInternal(ctx, "Failed to update employee", err)
			return
		}
	}

	updated, err := h.repo.Update(ctx.Request.Context(), id, req)

	if err != nil {
		if errors.Is(err, employee.ErrDuplicateEmail) {
			RespondBadRequest(ctx, "Email already exists")
			return
		}
		RespondInternal(ctx, "Failed to update employee", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Employee updated successfully",
		"data":    updated,
	})
}

func (h *EmployeesHandler) DeleteEmployee(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		return
	}

	removed, err := h.repo.Delete(ctx.Request.Context(), id)

	if err != nil {
		RespondInternal(ctx, "Failed to delete employee", err)
		return
	}

	if !removed {
		RespondNotFound(ctx, "Employee not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Employee deleted successfully",
	})
}

// parseID reads the :id path param. A non-numeric id can never resolve to a
// record, so it reports not found rather than bad request.
func parseID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil || id <= 0 {
		RespondNotFound(ctx, "Employee not found")
		return 0, false
	}

	return id, true
}
