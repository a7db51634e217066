package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/placement-portal/internal/application/admin"
	"github.com/jhoicas/placement-portal/internal/application/dto"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
	"github.com/jhoicas/placement-portal/internal/domain/search"
)

// AdminHandler páginas de administración.
type AdminHandler struct {
	svc   *admin.Service
	views *ViewCache
}

// NewAdminHandler construye el handler.
func NewAdminHandler(svc *admin.Service, views *ViewCache) *AdminHandler {
	return &AdminHandler{svc: svc, views: views}
}

// ReportPage reporte filtrado con el total de colocados y los formatos exportables.
type ReportPage struct {
	Rows    []entity.PlacementRow `json:"rows"`
	Placed  int                   `json:"placed"`
	Formats []string              `json:"formats"`
}

// Dashboard godoc
// @Summary      Métricas de la plataforma
// @Tags         admin
// @Produce      json
// @Success      200  {object}  admin.Overview
// @Router       /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.svc.Overview(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Users godoc
// @Summary      Cuentas por pestaña y búsqueda
// @Tags         admin
// @Produce      json
// @Param        tab  query  string  false  "ALL | STUDENT | COMPANY | ADMIN"
// @Param        q    query  string  false  "nombre o email"
// @Success      200  {array}  admin.UserRow
// @Router       /admin/users [get]
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	board, err := h.views.Users(c.UserContext(), h.svc, true)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(board.Filter(search.ParseTab(c.Query("tab")), c.Query("q")))
}

// SetUserStatus godoc
// @Summary      Moderar cuenta
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "User ID"
// @Param        body  body  dto.StatusUpdate  true  "ACTIVE | BLOCKED | REJECTED"
// @Success      200   {object}  entity.Account
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /admin/users/{id}/status [put]
func (h *AdminHandler) SetUserStatus(c *fiber.Ctx) error {
	var in dto.StatusUpdate
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	board, err := h.views.Users(c.UserContext(), h.svc, false)
	if err != nil {
		return writeError(c, err)
	}
	acc, err := board.SetStatus(c.UserContext(), c.Params("id"), entity.AccountStatus(in.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(acc)
}

// DeleteUser godoc
// @Summary      Eliminar cuenta
// @Tags         admin
// @Produce      json
// @Param        id   path  string  true  "User ID"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	board, err := h.views.Users(c.UserContext(), h.svc, false)
	if err != nil {
		return writeError(c, err)
	}
	if err := board.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Jobs godoc
// @Summary      Todas las ofertas
// @Tags         admin
// @Produce      json
// @Success      200  {array}  entity.Job
// @Router       /admin/jobs [get]
func (h *AdminHandler) Jobs(c *fiber.Ctx) error {
	out, err := h.svc.AllJobs(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteJob godoc
// @Summary      Eliminar cualquier oferta
// @Tags         admin
// @Produce      json
// @Param        id   path  string  true  "Job ID"
// @Success      204
// @Router       /admin/jobs/{id} [delete]
func (h *AdminHandler) DeleteJob(c *fiber.Ctx) error {
	if err := h.svc.DeleteJob(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Report godoc
// @Summary      Reporte de colocación con búsqueda
// @Tags         admin
// @Produce      json
// @Param        q    query  string  false  "estudiante, empresa u oferta"
// @Success      200  {object}  ReportPage
// @Router       /admin/stats [get]
func (h *AdminHandler) Report(c *fiber.Ctx) error {
	view, err := h.svc.LoadReport(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ReportPage{Rows: view.Filter(c.Query("q")), Placed: view.Placed(), Formats: h.svc.Formats()})
}

// Export godoc
// @Summary      Descargar el reporte de colocación
// @Tags         admin
// @Produce      text/csv
// @Produce      application/pdf
// @Produce      application/xml
// @Param        format  query  string  false  "csv (defecto) | pdf | xml"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /admin/stats/export [get]
func (h *AdminHandler) Export(c *fiber.Ctx) error {
	out, err := h.svc.ExportReport(c.UserContext(), c.Query("format"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", out.Filename))
	return c.Send(out.Body)
}
