package pages

import (
	"context"
	"errors"
	"time"

	"landing_page_studio/generator"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("landing page not found")
	// ErrMissingCredential is returned by a store configured without its key.
	ErrMissingCredential = errors.New("missing store credential")
)

// Fields are the domain columns of a landing page record.
type Fields struct {
	CompanyName  string              `json:"company_name"`
	Tagline      string              `json:"tagline"`
	Description  string              `json:"description"`
	HeroTitle    string              `json:"hero_title"`
	HeroSubtitle string              `json:"hero_subtitle"`
	Features     []generator.Feature `json:"features"`
	CTA          string              `json:"cta"`
	Theme        generator.Theme     `json:"theme"`
}

// Record is a persisted landing page.
type Record struct {
	ID string `json:"id"`
	Fields
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FieldsFromContent translates field names only.
func FieldsFromContent(c generator.ContentModel) Fields {
	features := c.Features
	if features == nil {
		features = []generator.Feature{}
	}
	return Fields{
		CompanyName:  c.CompanyName,
		Tagline:      c.Tagline,
		Description:  c.Description,
		HeroTitle:    c.HeroTitle,
		HeroSubtitle: c.HeroSubtitle,
		Features:     append([]generator.Feature(nil), features...),
		CTA:          c.CTA,
		Theme:        c.Theme,
	}
}

// Content projects the record back into the content model. Themes stored by
// older clients outside the closed set come back as default.
func (r Record) Content() generator.ContentModel {
	features := r.Features
	if features == nil {
		features = []generator.Feature{}
	}
	return generator.ContentModel{
		CompanyName:  r.CompanyName,
		Tagline:      r.Tagline,
		Description:  r.Description,
		HeroTitle:    r.HeroTitle,
		HeroSubtitle: r.HeroSubtitle,
		Features:     append([]generator.Feature(nil), features...),
		CTA:          r.CTA,
		Theme:        generator.NormalizeTheme(string(r.Theme)),
	}
}

// Store is the persistence gateway for landing pages.
type Store interface {
	Create(ctx context.Context, f Fields) (Record, error)
	Update(ctx context.Context, id string, f Fields) (Record, error)
	// List orders records by creation time, newest first.
	List(ctx context.Context) ([]Record, error)
	Get(ctx context.Context, id string) (Record, error)
	Delete(ctx context.Context, id string) error
}

// Unavailable is a Store whose every call fails with err.
type Unavailable struct {
	Err error
}

func (u Unavailable) Create(context.Context, Fields) (Record, error) { return Record{}, u.Err }
func (u Unavailable) Update(context.Context, string, Fields) (Record, error) {
	return Record{}, u.Err
}
func (u Unavailable) List(context.Context) ([]Record, error)      { return nil, u.Err }
func (u Unavailable) Get(context.Context, string) (Record, error) { return Record{}, u.Err }
func (u Unavailable) Delete(context.Context, string) error        { return u.Err }
