package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/placement-portal/internal/application/dto"
	"github.com/jhoicas/placement-portal/internal/application/ports"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
)

var (
	_ ports.JobsAPI         = (*JobsClient)(nil)
	_ ports.ApplicationsAPI = (*ApplicationsClient)(nil)
)

// JobsClient endpoints /jobs.
type JobsClient struct{ c *Client }

func (j *JobsClient) List(ctx context.Context) ([]entity.Job, error) {
	var out []entity.Job
	if err := j.c.doJSON(ctx, http.MethodGet, "/jobs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *JobsClient) Mine(ctx context.Context) ([]entity.Job, error) {
	var out []entity.Job
	if err := j.c.doJSON(ctx, http.MethodGet, "/jobs/my-jobs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *JobsClient) Get(ctx context.Context, id string) (*entity.Job, error) {
	var out entity.Job
	if err := j.c.doJSON(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (j *JobsClient) Create(ctx context.Context, in dto.JobInput) (*entity.Job, error) {
	var out entity.Job
	if err := j.c.doJSON(ctx, http.MethodPost, "/jobs", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update PUT /jobs/:id con la oferta completa.
func (j *JobsClient) Update(ctx context.Context, id string, in dto.JobInput) (*entity.Job, error) {
	var out entity.Job
	if err := j.c.doJSON(ctx, http.MethodPut, "/jobs/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (j *JobsClient) Delete(ctx context.Context, id string) error {
	return j.c.doJSON(ctx, http.MethodDelete, "/jobs/"+url.PathEscape(id), nil, nil)
}

// ApplicationsClient endpoints /applications.
type ApplicationsClient struct{ c *Client }

func (a *ApplicationsClient) Apply(ctx context.Context, jobID string) (*entity.Application, error) {
	var out entity.Application
	if err := a.c.doJSON(ctx, http.MethodPost, "/applications/apply", dto.ApplyRequest{JobID: jobID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ApplicationsClient) Mine(ctx context.Context) ([]entity.Application, error) {
	return a.list(ctx, "/applications/my-applications")
}

func (a *ApplicationsClient) CompanyAll(ctx context.Context) ([]entity.Application, error) {
	return a.list(ctx, "/applications/company/all")
}

func (a *ApplicationsClient) ForJob(ctx context.Context, jobID string) ([]entity.Application, error) {
	return a.list(ctx, "/applications/job/"+url.PathEscape(jobID))
}

func (a *ApplicationsClient) UpdateStatus(ctx context.Context, id string, status entity.ApplicationStatus) (*entity.Application, error) {
	var out entity.Application
	body := dto.StatusUpdate{Status: string(status)}
	if err := a.c.doJSON(ctx, http.MethodPut, "/applications/"+url.PathEscape(id)+"/status", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ApplicationsClient) list(ctx context.Context, path string) ([]entity.Application, error) {
	var out []entity.Application
	if err := a.c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
