// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"

	"github.com/pdiddy/company-research/internal/logging"
	"github.com/pdiddy/company-research/internal/search"
	"github.com/pdiddy/company-research/pkg/types"
)

func profileQuery(company string) string {
	return company + " company profile details"
}

// LookupProfile returns the first organic result for the company. An empty
// result set is not an error: it yields types.NotFoundProfile().
func (r *Researcher) LookupProfile(ctx context.Context, company string) (types.CompanyProfile, error) {
	company, err := normalizeCompany(company)
	if err != nil {
		return types.CompanyProfile{}, err
	}

	resp, err := r.search(ctx, "profile lookup", search.Params{
		Engine: search.EngineGoogle,
		Query:  profileQuery(company),
	})
	if err != nil {
		return types.CompanyProfile{}, err
	}

	if len(resp.OrganicResults) == 0 {
		r.logger().WithFields(logging.Fields{
			"company":  company,
			"provider": resp.Error,
		}).Warn("no company profile found")
		return types.NotFoundProfile(), nil
	}

	first := resp.OrganicResults[0]
	return types.CompanyProfile{
		Title:   first.Title,
		Link:    first.Link,
		Snippet: first.Snippet,
	}, nil
}
