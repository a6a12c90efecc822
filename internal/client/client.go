package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jmuiruri/staffhub/internal/domain/employee"
)

// Client is a thin typed wrapper over the employee HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// APIError is a non-2xx response reduced to a message a person can read.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// errorBody is the union of failure shapes the API produces.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

type listResponse struct {
	Success bool                `json:"success"`
	Count   int                 `json:"count"`
	Data    []employee.Employee `json:"data"`
}

type singleResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    employee.Employee `json:"data"`
}

func (c *Client) ListEmployees(ctx context.Context, search string) ([]employee.Employee, error) {
	path := "/api/employees"

	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}

	var out listResponse

	err := c.do(ctx, http.MethodGet, path, nil, &out)

	if err != nil {
		return nil, err
	}

	return out.Data, nil
}

func (c *Client) GetEmployee(ctx context.Context, id int64) (employee.Employee, error) {
	var out singleResponse

	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/employees/%d", id), nil, &out)

	if err != nil {
		return employee.Employee{}, err
	}

	return out.Data, nil
}

func (c *Client) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	var out singleResponse

	err := c.do(ctx, http.MethodPost, "/api/employees", req, &out)

	if err != nil {
		return employee.Employee{}, err
	}

	return out.Data, nil
}

func (c *Client) UpdateEmployee(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	var out singleResponse

	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/employees/%d", id), req, &out)

	if err != nil {
		return employee.Employee{}, err
	}

	return out.Data, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/employees/%d", id), nil, nil)
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)

		if err != nil {
			return err
		}

		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)

	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)

	if err != nil {
		return err
	}

	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)

	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &APIError{
			StatusCode: res.StatusCode,
			Message:    extractMessage(raw),
		}
	}

	if out == nil {
		return nil
	}

	return json.Unmarshal(raw, out)
}

// extractMessage prefers field-level validation detail, then the error and
// message fields, then a generic fallback.
func extractMessage(raw []byte) string {
	var body errorBody

	if err := json.Unmarshal(raw, &body); err == nil {
		if len(body.Errors) > 0 && body.Errors[0].Message != "" {
			return body.Errors[0].Message
		}

		if body.Error != "" {
			return body.Error
		}

		if body.Message != "" {
			return body.Message
		}
	}

	return "Operation failed"
}
