package pages

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"landing_page_studio/generator"
)

// DefaultTable is the Supabase table holding landing pages.
const DefaultTable = "landing_pages"

// SupabaseStore talks to the PostgREST endpoint of a Supabase project.
type SupabaseStore struct {
	baseURL string
	apiKey  string
	table   string
	client  *http.Client
}

// NewSupabase builds a store for the project at projectURL. A missing key
// yields a store whose calls fail with ErrMissingCredential.
func NewSupabase(projectURL, apiKey, table string, client *http.Client) (Store, error) {
	if projectURL == "" {
		return nil, errors.New("supabase url is required")
	}
	if apiKey == "" {
		return Unavailable{Err: fmt.Errorf("supabase: %w", ErrMissingCredential)}, nil
	}
	if table == "" {
		table = DefaultTable
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &SupabaseStore{
		baseURL: strings.TrimRight(projectURL, "/") + "/rest/v1/" + table,
		apiKey:  apiKey,
		table:   table,
		client:  client,
	}, nil
}

type supabaseError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e *supabaseError) Error() string {
	return fmt.Sprintf("supabase %d %s: %s", e.Status, e.Code, e.Message)
}

// codeInvalidText is the Postgres error raised when an id filter cannot be
// cast to the column type, e.g. a malformed uuid.
const codeInvalidText = "22P02"

// badID maps a rejected id filter to ErrNotFound; no row can match it.
func badID(id string, err error) error {
	var se *supabaseError
	if errors.As(err, &se) && se.Code == codeInvalidText {
		return fmt.Errorf("page %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SupabaseStore) Create(ctx context.Context, f Fields) (Record, error) {
	f.Theme = generator.NormalizeTheme(string(f.Theme))
	recs, err := s.do(ctx, http.MethodPost, nil, f)
	if err != nil {
		return Record{}, fmt.Errorf("failed to insert landing page: %w", err)
	}
	if len(recs) == 0 {
		return Record{}, errors.New("failed to insert landing page: empty representation")
	}
	return recs[0], nil
}

func (s *SupabaseStore) Update(ctx context.Context, id string, f Fields) (Record, error) {
	f.Theme = generator.NormalizeTheme(string(f.Theme))
	body := struct {
		Fields
		UpdatedAt time.Time `json:"updated_at"`
	}{Fields: f, UpdatedAt: time.Now().UTC()}

	recs, err := s.do(ctx, http.MethodPatch, idFilter(id), body)
	if nf := badID(id, err); nf != nil {
		return Record{}, nf
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to update landing page: %w", err)
	}
	if len(recs) == 0 {
		return Record{}, fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	return recs[0], nil
}

func (s *SupabaseStore) List(ctx context.Context) ([]Record, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "created_at.desc")
	recs, err := s.do(ctx, http.MethodGet, q, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list landing pages: %w", err)
	}
	return recs, nil
}

func (s *SupabaseStore) Get(ctx context.Context, id string) (Record, error) {
	q := idFilter(id)
	q.Set("select", "*")
	recs, err := s.do(ctx, http.MethodGet, q, nil)
	if nf := badID(id, err); nf != nil {
		return Record{}, nf
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to get landing page: %w", err)
	}
	if len(recs) == 0 {
		return Record{}, ErrNotFound
	}
	return recs[0], nil
}

func (s *SupabaseStore) Delete(ctx context.Context, id string) error {
	recs, err := s.do(ctx, http.MethodDelete, idFilter(id), nil)
	if nf := badID(id, err); nf != nil {
		return nf
	}
	if err != nil {
		return fmt.Errorf("failed to delete landing page: %w", err)
	}
	if len(recs) == 0 {
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	return nil
}

func idFilter(id string) url.Values {
	q := url.Values{}
	q.Set("id", "eq."+id)
	return q
}

// do sends one PostgREST request and decodes the returned rows.
func (s *SupabaseStore) do(ctx context.Context, method string, query url.Values, payload any) ([]Record, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	endpoint := s.baseURL
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		se := &supabaseError{Status: resp.StatusCode}
		if json.Unmarshal(data, se) == nil && se.Message != "" {
			return nil, se
		}
		return nil, fmt.Errorf("supabase http error %d: %s", resp.StatusCode, string(data))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decode supabase response: %w", err)
	}
	return recs, nil
}
