package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Error is a PostgREST error body
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("supabase: %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("supabase: %d: %s", e.Status, e.Message)
}

// Client talks to the Supabase table API (PostgREST)
type Client struct {
	http *resty.Client
}

// NewClient creates a client for the project at baseURL authenticated with key
func NewClient(baseURL, key string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")+"/rest/v1").
		SetHeader("apikey", key).
		SetAuthToken(key).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// only idempotent reads are retried
			if r == nil || r.Request == nil || r.Request.Method != "GET" {
				return false
			}
			return err != nil || r.StatusCode() >= 500
		})

	return &Client{http: rc}
}

// From starts a query against table
func (c *Client) From(table string) *Query {
	return &Query{
		client: c,
		table:  table,
		method: http.MethodGet,
		params: url.Values{},
	}
}

// Ping checks that the table API answers
func (c *Client) Ping(ctx context.Context, table string) error {
	var rows []map[string]interface{}
	_, err := c.From(table).Select("id").Limit(1).Execute(ctx, &rows)
	return err
}

// Query is a single PostgREST request under construction
type Query struct {
	client *Client
	table  string
	method string
	params url.Values
	body   interface{}
	prefer []string
	rng    string
}

// Select sets the returned columns, including embedded relations
func (q *Query) Select(columns string) *Query {
	q.params.Set("select", columns)
	return q
}

// Eq filters column = value
func (q *Query) Eq(column, value string) *Query {
	q.params.Add(column, "eq."+value)
	return q
}

// Lt filters column < value
func (q *Query) Lt(column, value string) *Query {
	q.params.Add(column, "lt."+value)
	return q
}

// In filters column to one of values
func (q *Query) In(column string, values []string) *Query {
	q.params.Add(column, "in.("+strings.Join(values, ",")+")")
	return q
}

// Order sorts by column
func (q *Query) Order(column string, ascending bool) *Query {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	q.params.Set("order", column+"."+dir)
	return q
}

// Limit caps the number of rows
func (q *Query) Limit(n int) *Query {
	q.params.Set("limit", strconv.Itoa(n))
	return q
}

// Range selects rows from..to inclusive and asks for the exact total
func (q *Query) Range(from, to int) *Query {
	q.rng = fmt.Sprintf("%d-%d", from, to)
	q.prefer = append(q.prefer, "count=exact")
	return q
}

// Count asks for the exact total in Content-Range
func (q *Query) Count() *Query {
	q.prefer = append(q.prefer, "count=exact")
	return q
}

// Insert turns the query into an insert returning the new rows
func (q *Query) Insert(row interface{}) *Query {
	q.method = http.MethodPost
	q.body = row
	q.prefer = append(q.prefer, "return=representation")
	return q
}

// Update turns the query into a filtered update returning the changed rows
func (q *Query) Update(values interface{}) *Query {
	q.method = http.MethodPatch
	q.body = values
	q.prefer = append(q.prefer, "return=representation")
	return q
}

// Execute runs the query, decoding rows into out when it is not nil.
// The returned total is only set when Count or Range was requested.
func (q *Query) Execute(ctx context.Context, out interface{}) (int64, error) {
	req := q.client.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(q.params).
		SetError(&Error{})

	if len(q.prefer) > 0 {
		req.SetHeader("Prefer", strings.Join(q.prefer, ","))
	}
	if q.rng != "" {
		req.SetHeader("Range-Unit", "items").SetHeader("Range", q.rng)
	}
	if q.body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(q.body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(q.method, "/"+q.table)
	if err != nil {
		return 0, fmt.Errorf("supabase %s %s: %w", q.method, q.table, err)
	}
	// a range past the last row is an empty page, not a failure
	if resp.StatusCode() == http.StatusRequestedRangeNotSatisfiable && q.rng != "" {
		return parseTotal(resp.Header().Get("Content-Range")), nil
	}
	if resp.IsError() {
		apiErr, ok := resp.Error().(*Error)
		if !ok || apiErr == nil {
			apiErr = &Error{}
		}
		if apiErr.Message == "" {
			apiErr.Message = resp.String()
		}
		apiErr.Status = resp.StatusCode()
		return 0, apiErr
	}

	return parseTotal(resp.Header().Get("Content-Range")), nil
}

// parseTotal reads "0-9/42" or "*/42"
func parseTotal(contentRange string) int64 {
	i := strings.LastIndex(contentRange, "/")
	if i < 0 {
		return 0
	}
	total, err := strconv.ParseInt(contentRange[i+1:], 10, 64)
	if err != nil {
		return 0
	}
	return total
}
