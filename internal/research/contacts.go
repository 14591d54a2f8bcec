// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"fmt"

	"github.com/pdiddy/company-research/internal/logging"
	"github.com/pdiddy/company-research/internal/search"
	"github.com/pdiddy/company-research/pkg/types"
)

func contactsQuery(company string) string {
	return fmt.Sprintf(`"HR Head" OR "Talent Acquisition" site:linkedin.com/in "%s"`, company)
}

// DiscoverContacts pages through HR and talent-acquisition profile results
// for the company and returns at most maxLeads contacts, unique by link, in
// the order they were first seen. maxLeads <= 0 uses Config.MaxLeads.
//
// It requests maxLeads/PageSize+1 pages of PageSize results and stops early
// only once maxLeads unique contacts are collected. Short or empty pages do
// not end pagination. The Waiter runs between successive page requests,
// never after the last one.
func (r *Researcher) DiscoverContacts(ctx context.Context, company string, maxLeads int) ([]types.Contact, error) {
	company, err := normalizeCompany(company)
	if err != nil {
		return nil, err
	}

	cfg := r.Config.WithDefaults()
	if maxLeads <= 0 {
		maxLeads = cfg.MaxLeads
	}
	pageSize := cfg.PageSize
	pages := maxLeads/pageSize + 1
	query := contactsQuery(company)
	log := r.logger().WithField("company", company)

	contacts := make([]types.Contact, 0, maxLeads)
	seen := make(map[string]bool)

	for page := 0; page < pages; page++ {
		if page > 0 {
			if err := r.waiter().Wait(ctx); err != nil {
				return nil, fmt.Errorf("contact discovery: waiting before page %d: %w", page+1, err)
			}
		}

		resp, err := r.search(ctx, fmt.Sprintf("contact discovery page %d", page+1), search.Params{
			Engine: search.EngineGoogle,
			Query:  query,
			Start:  page * pageSize,
		})
		if err != nil {
			return nil, err
		}

		added := 0
		for _, res := range resp.OrganicResults {
			link := orDefault(res.Link, types.NoLink)
			if seen[link] {
				continue
			}
			seen[link] = true
			contacts = append(contacts, types.Contact{
				Name:        orDefault(res.Title, types.NotAvailable),
				Label:       types.ContactLinkLabel,
				ProfileLink: link,
			})
			added++
		}

		log.WithFields(logging.Fields{
			"page":    page + 1,
			"results": len(resp.OrganicResults),
			"added":   added,
			"total":   len(contacts),
		}).Debug("contact page fetched")

		if len(contacts) >= maxLeads {
			break
		}
	}

	if len(contacts) > maxLeads {
		contacts = contacts[:maxLeads]
	}
	return contacts, nil
}
