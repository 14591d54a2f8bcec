// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research runs the three company queries (profile lookup, job
// listing, contact discovery) against a search provider and binds their
// results into a types.Report.
//
// Every operation is a synchronous request/response call; a Researcher keeps
// no state between invocations.
package research

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/company-research/internal/httputil"
	"github.com/pdiddy/company-research/internal/logging"
	"github.com/pdiddy/company-research/internal/search"
	"github.com/pdiddy/company-research/pkg/types"
)

// ErrEmptyCompany is returned when the company name is blank.
var ErrEmptyCompany = errors.New("company name is empty")

// Researcher issues the company queries. Provider and Config are required;
// Waiter defaults to a FixedDelay of Config.PageDelay and Logger to a
// discarding logger.
type Researcher struct {
	Provider search.Provider
	Config   types.ResearchConfig
	Waiter   httputil.Waiter
	Logger   logging.Logger

	// Now stamps Report.GeneratedAt. Defaults to time.Now.
	Now func() time.Time
}

// New returns a Researcher with defaults applied to cfg.
func New(provider search.Provider, cfg types.ResearchConfig, logger logging.Logger) *Researcher {
	cfg = cfg.WithDefaults()
	return &Researcher{
		Provider: provider,
		Config:   cfg,
		Waiter:   httputil.FixedDelay(cfg.PageDelay),
		Logger:   logger,
		Now:      time.Now,
	}
}

// Run executes profile lookup, job listing, and contact discovery in that
// order and returns the combined report. The first error aborts the run;
// no partial report is returned.
func (r *Researcher) Run(ctx context.Context, company string) (types.Report, error) {
	company, err := normalizeCompany(company)
	if err != nil {
		return types.Report{}, err
	}

	cfg := r.Config.WithDefaults()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	log := r.logger().WithField("company", company)
	start := time.Now()

	profile, err := r.LookupProfile(ctx, company)
	if err != nil {
		return types.Report{}, err
	}
	jobs, err := r.ListJobs(ctx, company)
	if err != nil {
		return types.Report{}, err
	}
	contacts, err := r.DiscoverContacts(ctx, company, cfg.MaxLeads)
	if err != nil {
		return types.Report{}, err
	}

	log.WithFields(logging.Fields{
		"profile_found": !profile.NotFound,
		"jobs":          len(jobs),
		"contacts":      len(contacts),
		"elapsed":       time.Since(start).Round(time.Millisecond).String(),
	}).Info("research complete")

	return types.Report{
		Company:     company,
		Profile:     profile,
		Jobs:        jobs,
		Contacts:    contacts,
		GeneratedAt: r.now(),
	}, nil
}

func (r *Researcher) logger() logging.Logger {
	if r.Logger == nil {
		return logging.Discard()
	}
	return r.Logger
}

func (r *Researcher) waiter() httputil.Waiter {
	if r.Waiter == nil {
		return httputil.FixedDelay(r.Config.WithDefaults().PageDelay)
	}
	return r.Waiter
}

func (r *Researcher) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func normalizeCompany(company string) (string, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return "", ErrEmptyCompany
	}
	return company, nil
}

// orDefault returns s, or fallback when s is empty.
func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func (r *Researcher) search(ctx context.Context, what string, params search.Params) (*search.Response, error) {
	if r.Provider == nil {
		return nil, fmt.Errorf("%s: no search provider configured", what)
	}
	resp, err := r.Provider.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	if resp == nil {
		resp = &search.Response{}
	}
	return resp, nil
}
