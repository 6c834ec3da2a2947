package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/leandertoney/tastelanc/config"
)

const (
	restTimeout  = 30 * time.Second
	maxErrorBody = 200
)

// RESTStore talks to the Supabase REST surface: PostgREST for table reads
// and writes, the GoTrue admin API for the user pool.
type RESTStore struct {
	baseURL    string
	serviceKey string
	client     *http.Client
}

// NewRESTStore builds a store against the project's Supabase URL using the
// service role key, which bypasses row level security for bulk writes.
func NewRESTStore(cfg config.Config) *RESTStore {
	return &RESTStore{
		baseURL:    strings.TrimRight(cfg.SupabaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		client: &http.Client{
			Timeout: restTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (s *RESTStore) authorize(req *http.Request) {
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
}

// Select reads rows through PostgREST, e.g.
// GET /rest/v1/restaurants?select=id,name&is_active=eq.true&limit=500.
func (s *RESTStore) Select(ctx context.Context, q Query, dest any) error {
	params := url.Values{}
	if len(q.Columns) > 0 {
		params.Set("select", strings.Join(q.Columns, ","))
	}
	if q.ActiveOnly {
		params.Set("is_active", "eq.true")
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", s.baseURL, q.Collection, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	s.authorize(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", q.Collection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", q.Collection, err)
	}
	return nil
}

// UserIDs pages the GoTrue admin user listing. One page is enough for the
// pool sizes the generators use.
func (s *RESTStore) UserIDs(ctx context.Context, limit int) ([]string, error) {
	endpoint := fmt.Sprintf("%s/auth/v1/admin/users?per_page=%d&page=1", s.baseURL, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	s.authorize(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, readError(resp)
	}

	var payload struct {
		Users []struct {
			ID string `json:"id"`
		} `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode user listing: %w", err)
	}

	ids := make([]string, 0, len(payload.Users))
	for _, u := range payload.Users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}

// Insert posts a JSON array to PostgREST. The response carries no row count,
// so on success the accepted count is the submitted count; under
// IgnoreDuplicates that overcounts silently dropped collisions.
func (s *RESTStore) Insert(ctx context.Context, collection string, rows any, policy DuplicatePolicy) (int, error) {
	rv := reflect.ValueOf(rows)
	if rv.Kind() != reflect.Slice {
		return 0, fmt.Errorf("insert rows must be a slice, got %T", rows)
	}
	if rv.Len() == 0 {
		return 0, nil
	}

	body, err := json.Marshal(rows)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal rows: %w", err)
	}

	endpoint := fmt.Sprintf("%s/rest/v1/%s", s.baseURL, collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	s.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	prefer := "return=minimal"
	if policy == IgnoreDuplicates {
		prefer += ",resolution=ignore-duplicates"
	}
	req.Header.Set("Prefer", prefer)

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, readError(resp)
	}
	return rv.Len(), nil
}

func readError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &RequestError{Status: resp.StatusCode, Body: string(body)}
}
