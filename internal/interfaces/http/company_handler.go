package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/placement-portal/internal/application/company"
	"github.com/jhoicas/placement-portal/internal/application/dto"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
)

// CompanyHandler páginas de la empresa.
type CompanyHandler struct {
	svc   *company.Service
	views *ViewCache
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(svc *company.Service, views *ViewCache) *CompanyHandler {
	return &CompanyHandler{svc: svc, views: views}
}

// Dashboard godoc
// @Summary      Tarjetas de la empresa
// @Tags         company
// @Produce      json
// @Success      200  {object}  entity.CompanyStats
// @Router       /company/dashboard [get]
func (h *CompanyHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.svc.Dashboard(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PostJob godoc
// @Summary      Publicar oferta
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        body  body  company.JobForm  true  "title, description, requirements"
// @Success      201   {object}  entity.Job
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /company/post-job [post]
func (h *CompanyHandler) PostJob(c *fiber.Ctx) error {
	var form company.JobForm
	if err := c.BodyParser(&form); err != nil {
		return invalidBody(c)
	}
	job, err := h.svc.PostJob(c.UserContext(), form)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// Jobs godoc
// @Summary      Mis ofertas
// @Tags         company
// @Produce      json
// @Success      200  {array}  entity.Job
// @Router       /company/jobs [get]
func (h *CompanyHandler) Jobs(c *fiber.Ctx) error {
	board, err := h.views.CompanyJobs(c.UserContext(), h.svc, true)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(board.Jobs())
}

// SetJobStatus godoc
// @Summary      Abrir o cerrar una oferta
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "Job ID"
// @Param        body  body  dto.StatusUpdate  true  "OPEN | CLOSED; vacío alterna"
// @Success      200   {object}  entity.Job
// @Router       /company/jobs/{id}/status [put]
func (h *CompanyHandler) SetJobStatus(c *fiber.Ctx) error {
	var in dto.StatusUpdate
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	board, err := h.views.CompanyJobs(c.UserContext(), h.svc, false)
	if err != nil {
		return writeError(c, err)
	}
	var job *entity.Job
	if in.Status == "" {
		job, err = board.Toggle(c.UserContext(), c.Params("id"))
	} else {
		job, err = board.SetStatus(c.UserContext(), c.Params("id"), entity.JobStatus(in.Status))
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(job)
}

// DeleteJob godoc
// @Summary      Eliminar oferta
// @Tags         company
// @Produce      json
// @Param        id   path  string  true  "Job ID"
// @Success      204
// @Router       /company/jobs/{id} [delete]
func (h *CompanyHandler) DeleteJob(c *fiber.Ctx) error {
	board, err := h.views.CompanyJobs(c.UserContext(), h.svc, false)
	if err != nil {
		return writeError(c, err)
	}
	if err := board.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	h.views.DropCandidates()
	return c.SendStatus(fiber.StatusNoContent)
}

// Candidates godoc
// @Summary      Candidatos con sus acciones
// @Tags         company
// @Produce      json
// @Param        job  query  string  false  "filtra por oferta"
// @Success      200  {array}  company.Candidate
// @Router       /company/candidates [get]
func (h *CompanyHandler) Candidates(c *fiber.Ctx) error {
	board, err := h.views.Candidates(c.UserContext(), h.svc, c.Query("job"), true)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(board.Candidates())
}

// UpdateCandidate godoc
// @Summary      Cambiar estado de una postulación
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        id    path   string            true   "Application ID"
// @Param        job   query  string            false  "oferta del listado"
// @Param        body  body   dto.StatusUpdate  true   "SHORTLISTED | HIRED | REJECTED"
// @Success      200   {object}  company.Candidate
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /company/candidates/{id}/status [put]
func (h *CompanyHandler) UpdateCandidate(c *fiber.Ctx) error {
	var in dto.StatusUpdate
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	board, err := h.views.Candidates(c.UserContext(), h.svc, c.Query("job"), false)
	if err != nil {
		return writeError(c, err)
	}
	app, err := board.UpdateStatus(c.UserContext(), c.Params("id"), entity.ApplicationStatus(in.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(company.Candidate{Application: *app, Name: app.CandidateName(), Actions: board.Actions(app.ID)})
}
