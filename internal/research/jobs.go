// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"

	"github.com/pdiddy/company-research/internal/search"
	"github.com/pdiddy/company-research/pkg/types"
)

func jobsQuery(company string) string {
	return company + " jobs"
}

// ListJobs returns one Job per posting in the job search response, in
// provider order. Missing fields are filled with types.NotAvailable, and a
// posting without apply options gets types.NoLink. An empty response
// yields an empty, non-nil slice.
func (r *Researcher) ListJobs(ctx context.Context, company string) ([]types.Job, error) {
	company, err := normalizeCompany(company)
	if err != nil {
		return nil, err
	}

	resp, err := r.search(ctx, "job listing", search.Params{
		Engine: search.EngineGoogleJobs,
		Query:  jobsQuery(company),
	})
	if err != nil {
		return nil, err
	}

	jobs := make([]types.Job, 0, len(resp.JobsResults))
	for _, j := range resp.JobsResults {
		jobs = append(jobs, toJob(j))
	}

	r.logger().WithField("company", company).Debugf("found %d job postings", len(jobs))
	return jobs, nil
}

func toJob(j search.JobResult) types.Job {
	link := types.NoLink
	if len(j.ApplyOptions) > 0 {
		link = orDefault(j.ApplyOptions[0].Link, types.NoLink)
	}
	return types.Job{
		Title:     orDefault(j.Title, types.NotAvailable),
		Location:  orDefault(j.Location, types.NotAvailable),
		PostedAt:  orDefault(j.DetectedExtensions.PostedAt, types.NotAvailable),
		ApplyLink: link,
	}
}
