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
	_ ports.AdminAPI     = (*AdminClient)(nil)
	_ ports.AnalyticsAPI = (*AnalyticsClient)(nil)
)

// AdminClient endpoints /admin.
type AdminClient struct{ c *Client }

func (a *AdminClient) Stats(ctx context.Context) (*entity.AdminStats, error) {
	var out entity.AdminStats
	if err := a.c.doJSON(ctx, http.MethodGet, "/admin/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AdminClient) Users(ctx context.Context) ([]entity.Account, error) {
	var out []entity.Account
	if err := a.c.doJSON(ctx, http.MethodGet, "/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *AdminClient) UpdateUserStatus(ctx context.Context, id string, status entity.AccountStatus) error {
	body := dto.StatusUpdate{Status: string(status)}
	return a.c.doJSON(ctx, http.MethodPut, "/admin/users/"+url.PathEscape(id)+"/status", body, nil)
}

func (a *AdminClient) DeleteUser(ctx context.Context, id string) error {
	return a.c.doJSON(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(id), nil, nil)
}

func (a *AdminClient) PlacementReport(ctx context.Context) ([]entity.PlacementRow, error) {
	var out []entity.PlacementRow
	if err := a.c.doJSON(ctx, http.MethodGet, "/admin/reports/placement", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AnalyticsClient endpoints /analytics.
type AnalyticsClient struct{ c *Client }

func (a *AnalyticsClient) Platform(ctx context.Context) (*entity.AdminStats, error) {
	var out entity.AdminStats
	if err := a.c.doJSON(ctx, http.MethodGet, "/analytics/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AnalyticsClient) Student(ctx context.Context) (*entity.StudentStats, error) {
	var out entity.StudentStats
	if err := a.c.doJSON(ctx, http.MethodGet, "/analytics/student", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AnalyticsClient) Company(ctx context.Context) (*entity.CompanyStats, error) {
	var out entity.CompanyStats
	if err := a.c.doJSON(ctx, http.MethodGet, "/analytics/company", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
