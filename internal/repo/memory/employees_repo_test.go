package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmuiruri/staffhub/internal/domain/employee"
	"github.com/jmuiruri/staffhub/internal/http/handlers"
	"github.com/jmuiruri/staffhub/internal/repo/memory"
)

// The in-memory repo must satisfy the handler contract.
var _ handlers.EmployeesStore = (*memory.EmployeesRepo)(nil)

func TestCreateGetDeleteRoundtrip(t *testing.T) {
	repo := memory.NewEmployeesRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, employee.CreateEmployeeRequest{
		Name: "Ann Lee", Email: "ann@x.com", Position: "Engineer",
	})

	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.ID != 1 {
		t.Fatalf("got id %d, want 1", created.ID)
	}

	fetched, err := repo.GetByID(ctx, created.ID)

	if err != nil || fetched != created {
		t.Fatalf("get by id: %+v, %v", fetched, err)
	}

	byEmail, err := repo.GetByEmail(ctx, "ANN@X.COM")

	if err != nil || byEmail.ID != created.ID {
		t.Fatalf("get by email: %+v, %v", byEmail, err)
	}

	removed, err := repo.Delete(ctx, created.ID)

	if err != nil || !removed {
		t.Fatalf("delete: %v, removed=%v", err, removed)
	}

	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, employee.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	if removed, _ := repo.Delete(ctx, created.ID); removed {
		t.Fatal("second delete must report false")
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	repo := memory.NewEmployeesRepo()
	ctx := context.Background()

	if _, err := repo.Create(ctx, employee.CreateEmployeeRequest{
		Name: "Ann Lee", Email: "ann@x.com", Position: "Engineer",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := repo.Create(ctx, employee.CreateEmployeeRequest{
		Name: "Other", Email: "ann@x.com", Position: "Designer",
	})

	if !errors.Is(err, employee.ErrDuplicateEmail) {
		t.Fatalf("got %v, want ErrDuplicateEmail", err)
	}

	bob, err := repo.Create(ctx, employee.CreateEmployeeRequest{
		Name: "Bob Carr", Email: "bob@x.com", Position: "Designer",
	})

	if err != nil {
		t.Fatalf("create bob: %v", err)
	}

	_, err = repo.Update(ctx, bob.ID, employee.UpdateEmployeeRequest{
		Name: "Bob Carr", Email: "ann@x.com", Position: "Designer",
	})

	if !errors.Is(err, employee.ErrDuplicateEmail) {
		t.Fatalf("update to taken email: got %v, want ErrDuplicateEmail", err)
	}
}

func TestListFiltersAndSorts(t *testing.T) {
	repo := memory.NewEmployeesRepo()
	ctx := context.Background()

	for _, req := range []employee.CreateEmployeeRequest{
		{Name: "Ann Lee", Email: "ann@x.com", Position: "Engineer"},
		{Name: "Bob Carr", Email: "bob@x.com", Position: "Designer"},
		{Name: "Cara Diaz", Email: "cara@y.org", Position: "Engineer"},
	} {
		if _, err := repo.Create(ctx, req); err != nil {
			t.Fatalf("create %s: %v", req.Email, err)
		}
	}

	all, err := repo.List(ctx, "")

	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(all) != 3 {
		t.Fatalf("got %d, want 3", len(all))
	}

	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]

		if cur.CreatedAt.After(prev.CreatedAt) {
			t.Fatal("list must be ordered newest first")
		}

		if cur.CreatedAt.Equal(prev.CreatedAt) && cur.ID > prev.ID {
			t.Fatal("ties must break on id descending")
		}
	}

	engineers, err := repo.List(ctx, "engineer")

	if err != nil {
		t.Fatalf("list engineers: %v", err)
	}

	if len(engineers) != 2 {
		t.Fatalf("got %d engineers, want 2", len(engineers))
	}

	count, _ := repo.Count(ctx)

	if count != 3 {
		t.Fatalf("got count %d, want 3", count)
	}
}

func TestUpdateMissingRecord(t *testing.T) {
	repo := memory.NewEmployeesRepo()

	_, err := repo.Update(context.Background(), 99, employee.UpdateEmployeeRequest{
		Name: "Ann Lee", Email: "ann@x.com", Position: "Engineer",
	})

	if !errors.Is(err, employee.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
