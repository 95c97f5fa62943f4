package libdaybook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"

	"github.com/pkg/errors"
)

type (
	// A Client defines all interactions that can be performed on a Daybook server.
	Client interface {
		// BearerToken returns the token used for requests sent to the Daybook server.
		BearerToken() string
		// SetBearerToken sets the token used for requests sent to the Daybook server.
		SetBearerToken(token string)
		// Owner returns the owner identity bound to the bearer token.
		Owner() (string, error)
		// CreateRecord stores a new record.
		CreateRecord(collection string, params RecordParams) (*Record, error)
		// ListRecords returns one page of records, newest first.
		ListRecords(collection string, page, limit int) ([]*Record, error)
		// GetRecord returns a single record.
		GetRecord(collection, id string) (*Record, error)
		// DeleteRecord removes a record.
		DeleteRecord(collection, id string) error
		// RandomRecord returns a record picked at random.
		RandomRecord(collection string) (*Record, error)
		// UpsertRecord saves a record by id, by day slot, or as a new entry.
		UpsertRecord(collection string, params RecordParams) (*Record, error)
		// ListDay returns all records of one calendar day, ordered by slot.
		ListDay(collection, dayKey string) ([]*Record, error)
	}

	client struct {
		http     *http.Client
		endpoint string
		bearer   string
	}

	// envelope is the result shape shared by all record operations.
	envelope struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
		Page    int             `json:"page"`
		Limit   int             `json:"limit"`
		Error   string          `json:"error"`
	}
)

// NewDefaultClient returns a new Client with default HTTP client.
func NewDefaultClient(endpoint string) (Client, error) {
	return NewClient(http.DefaultClient, endpoint)
}

// NewClient returns a new Client.
func NewClient(c *http.Client, endpoint string) (Client, error) {
	_, err := url.Parse(endpoint)
	return &client{endpoint: endpoint, http: c}, errors.Wrap(err, "could not parse endpoint")
}

// BearerToken returns the token used for requests sent to the Daybook server.
func (c *client) BearerToken() string {
	return c.bearer
}

// SetBearerToken sets the token used for requests sent to the Daybook server.
func (c *client) SetBearerToken(token string) {
	c.bearer = token
}

// Owner returns the owner identity bound to the bearer token.
func (c *client) Owner() (string, error) {
	res, err := c.request(http.MethodGet, "/me", nil, nil)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	var payload struct {
		Owner string `json:"owner"`
	}
	err = json.NewDecoder(res.Body).Decode(&payload)
	return payload.Owner, errors.Wrap(err, "could not parse owner response")
}

// CreateRecord stores a new record.
func (c *client) CreateRecord(collection string, params RecordParams) (*Record, error) {
	env, err := c.operation(http.MethodPost, path.Join("/records", collection), nil, params)
	if err != nil {
		return nil, err
	}
	return record(env)
}

// ListRecords returns one page of records, newest first.
func (c *client) ListRecords(collection string, page, limit int) ([]*Record, error) {
	query := url.Values{}
	query.Set("page", fmt.Sprintf("%d", page))
	query.Set("limit", fmt.Sprintf("%d", limit))

	env, err := c.operation(http.MethodGet, path.Join("/records", collection), query, nil)
	if err != nil {
		return nil, err
	}
	return records(env)
}

// GetRecord returns a single record.
func (c *client) GetRecord(collection, id string) (*Record, error) {
	env, err := c.operation(http.MethodGet, path.Join("/records", collection, id), nil, nil)
	if err != nil {
		return nil, err
	}
	return record(env)
}

// DeleteRecord removes a record.
func (c *client) DeleteRecord(collection, id string) error {
	_, err := c.operation(http.MethodDelete, path.Join("/records", collection, id), nil, nil)
	return err
}

// RandomRecord returns a record picked at random.
func (c *client) RandomRecord(collection string) (*Record, error) {
	env, err := c.operation(http.MethodGet, path.Join("/records", collection, "random"), nil, nil)
	if err != nil {
		return nil, err
	}
	return record(env)
}

// UpsertRecord saves a record by id, by day slot, or as a new entry.
func (c *client) UpsertRecord(collection string, params RecordParams) (*Record, error) {
	env, err := c.operation(http.MethodPut, path.Join("/records", collection), nil, params)
	if err != nil {
		return nil, err
	}
	return record(env)
}

// ListDay returns all records of one calendar day, ordered by slot.
func (c *client) ListDay(collection, dayKey string) ([]*Record, error) {
	env, err := c.operation(http.MethodGet, path.Join("/records", collection, "day", dayKey), nil, nil)
	if err != nil {
		return nil, err
	}
	return records(env)
}

// operation performs a record operation and decodes its result envelope.
// A `code: -1` envelope is surfaced as an *APIError.
func (c *client) operation(method, endpoint string, query url.Values, params any) (*envelope, error) {
	res, err := c.request(method, endpoint, query, params)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return nil, errors.Wrap(err, "could not parse result envelope")
	}

	if env.Code != 0 {
		return nil, &APIError{
			StatusCode: res.StatusCode,
			Message:    env.Message,
			Diagnostic: env.Error,
		}
	}
	return &env, nil
}

func (c *client) request(method, endpoint string, query url.Values, params any) (*http.Response, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse endpoint")
	}
	u.Path = path.Join(u.Path, endpoint)
	u.RawQuery = query.Encode()

	var body *bytes.Buffer = bytes.NewBuffer(nil)
	if params != nil {
		if err := json.NewEncoder(body).Encode(params); err != nil {
			return nil, errors.Wrap(err, "could not serialize params")
		}
	}

	req, err := http.NewRequest(method, u.String(), body)
	if err != nil {
		return nil, errors.Wrap(err, "could not create request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "could not perform request")
	}

	if res.StatusCode >= http.StatusBadRequest {
		defer res.Body.Close()
		return nil, parseAPIError(res.Body, res.StatusCode)
	}
	return res, nil
}

func record(env *envelope) (*Record, error) {
	if len(env.Data) == 0 {
		return nil, nil
	}
	var r Record
	err := json.Unmarshal(env.Data, &r)
	return &r, errors.Wrap(err, "could not parse record")
}

func records(env *envelope) ([]*Record, error) {
	rs := make([]*Record, 0)
	if len(env.Data) == 0 {
		return rs, nil
	}
	err := json.Unmarshal(env.Data, &rs)
	return rs, errors.Wrap(err, "could not parse records")
}
