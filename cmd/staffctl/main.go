package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/jmuiruri/staffhub/internal/client"
	"github.com/jmuiruri/staffhub/internal/domain/employee"
)

const usage = `staffctl - employee directory client

Usage:
  staffctl [-server URL] list [-search TEXT]
  staffctl [-server URL] get ID
  staffctl [-server URL] add -name NAME -email EMAIL -position POSITION
  staffctl [-server URL] edit ID -name NAME -email EMAIL -position POSITION
  staffctl [-server URL] rm ID
`

func main() {
	server := flag.String("server", "http://localhost:8080", "base URL of the staffhub API")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()

	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	c := client.New(*server)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var err error

	switch args[0] {
	case "list":
		err = runList(ctx, c, args[1:])
	case "get":
		err = runGet(ctx, c, args[1:])
	case "add":
		err = runAdd(ctx, c, args[1:])
	case "edit":
		err = runEdit(ctx, c, args[1:])
	case "rm":
		err = runRemove(ctx, c, args[1:])
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runList(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	search := fs.String("search", "", "filter by name, email, or position")
	_ = fs.Parse(args)

	// fetch the full list and filter locally, the way the web client does
	employees, err := c.ListEmployees(ctx, "")

	if err != nil {
		return err
	}

	visible := client.Filter(employees, *search)

	printTable(visible)
	fmt.Printf("%d of %d employees\n", len(visible), len(employees))

	return nil
}

func runGet(ctx context.Context, c *client.Client, args []string) error {
	id, err := parseIDArg(args)

	if err != nil {
		return err
	}

	e, err := c.GetEmployee(ctx, id)

	if err != nil {
		return err
	}

	printTable([]employee.Employee{e})

	return nil
}

func runAdd(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "employee name")
	email := fs.String("email", "", "employee email")
	position := fs.String("position", "", "employee position")
	_ = fs.Parse(args)

	created, err := c.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:     *name,
		Email:    *email,
		Position: *position,
	})

	if err != nil {
		return err
	}

	fmt.Printf("created employee %d\n", created.ID)

	return nil
}

func runEdit(ctx context.Context, c *client.Client, args []string) error {
	id, err := parseIDArg(args)

	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	name := fs.String("name", "", "employee name")
	email := fs.String("email", "", "employee email")
	position := fs.String("position", "", "employee position")
	_ = fs.Parse(args[1:])

	updated, err := c.UpdateEmployee(ctx, id, employee.UpdateEmployeeRequest{
		Name:     *name,
		Email:    *email,
		Position: *position,
	})

	if err != nil {
		return err
	}

	fmt.Printf("updated employee %d\n", updated.ID)

	return nil
}

func runRemove(ctx context.Context, c *client.Client, args []string) error {
	id, err := parseIDArg(args)

	if err != nil {
		return err
	}

	if err := c.DeleteEmployee(ctx, id); err != nil {
		return err
	}

	fmt.Printf("deleted employee %d\n", id)

	return nil
}

func parseIDArg(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing employee id")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)

	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid employee id %q", args[0])
	}

	return id, nil
}

func printTable(employees []employee.Employee) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPOSITION\tCREATED")

	for _, e := range employees {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			e.ID, e.Name, e.Email, e.Position, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	w.Flush()
}
