package sandbox

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/placement-portal/internal/application/dto"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
)

// Handler expone el Backend como API REST.
type Handler struct {
	b *Backend
}

// NewHandler construye los handlers del sandbox.
func NewHandler(b *Backend) *Handler {
	return &Handler{b: b}
}

// fail traduce el error a {"error": ...}; los desconocidos se registran y responden 500.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status, code := statusOf(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		h.b.log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		msg = "Internal server error"
	}
	return c.Status(status).JSON(dto.APIError{Error: msg, Code: code})
}

func (h *Handler) invalidBody(c *fiber.Ctx) error {
	return reject(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
}

// activeAccount rechaza tokens de cuentas eliminadas o que dejaron de estar activas.
func (h *Handler) activeAccount(c *fiber.Ctx) error {
	if err := h.b.Authorize(GetUserID(c)); err != nil {
		return h.fail(c, err)
	}
	return c.Next()
}

// ─── Auth ─────────────────────────────────────────────────────────────────────

// Register godoc
// @Summary      Registrar estudiante o empresa
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, role"
// @Success      201   {object}  RegisterResult
// @Failure      400   {object}  dto.APIError
// @Failure      403   {object}  dto.APIError
// @Failure      409   {object}  dto.APIError
// @Router       /api/auth/register [post]
func (h *Handler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	out, err := h.b.Register(in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.APIError
// @Failure      403   {object}  dto.APIError
// @Router       /api/auth/login [post]
func (h *Handler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return reject(c, fiber.StatusBadRequest, "VALIDATION", "Email and password are required")
	}
	out, err := h.b.Login(in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// ─── Jobs ─────────────────────────────────────────────────────────────────────

// ListJobs godoc
// @Summary      Listar ofertas
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.Job
// @Router       /api/jobs [get]
func (h *Handler) ListJobs(c *fiber.Ctx) error {
	return c.JSON(h.b.ListJobs())
}

// MyJobs godoc
// @Summary      Ofertas de la empresa autenticada
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.Job
// @Router       /api/jobs/my-jobs [get]
func (h *Handler) MyJobs(c *fiber.Ctx) error {
	return c.JSON(h.b.CompanyJobs(GetUserID(c)))
}

// GetJob godoc
// @Summary      Obtener oferta
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Job ID"
// @Success      200  {object}  entity.Job
// @Failure      404  {object}  dto.APIError
// @Router       /api/jobs/{id} [get]
func (h *Handler) GetJob(c *fiber.Ctx) error {
	job, err := h.b.GetJob(c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(job)
}

// CreateJob godoc
// @Summary      Publicar oferta
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.JobInput  true  "title, description, requirements"
// @Success      201   {object}  entity.Job
// @Failure      400   {object}  dto.APIError
// @Router       /api/jobs [post]
func (h *Handler) CreateJob(c *fiber.Ctx) error {
	var in dto.JobInput
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	job, err := h.b.CreateJob(GetUserID(c), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// UpdateJob godoc
// @Summary      Actualizar oferta (dueña o admin)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string        true  "Job ID"
// @Param        body  body  dto.JobInput  true  "oferta completa"
// @Success      200   {object}  entity.Job
// @Failure      403   {object}  dto.APIError
// @Failure      404   {object}  dto.APIError
// @Router       /api/jobs/{id} [put]
func (h *Handler) UpdateJob(c *fiber.Ctx) error {
	var in dto.JobInput
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	job, err := h.b.UpdateJob(GetActor(c), c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(job)
}

// DeleteJob godoc
// @Summary      Eliminar oferta (dueña o admin)
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Job ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.APIError
// @Failure      404  {object}  dto.APIError
// @Router       /api/jobs/{id} [delete]
func (h *Handler) DeleteJob(c *fiber.Ctx) error {
	if err := h.b.DeleteJob(GetActor(c), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Job deleted successfully"})
}

// ─── Applications ─────────────────────────────────────────────────────────────

// Apply godoc
// @Summary      Postularse a una oferta
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ApplyRequest  true  "jobId"
// @Success      201   {object}  entity.Application
// @Failure      400   {object}  dto.APIError
// @Failure      404   {object}  dto.APIError
// @Router       /api/applications/apply [post]
func (h *Handler) Apply(c *fiber.Ctx) error {
	var in dto.ApplyRequest
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	app, err := h.b.Apply(GetUserID(c), in.JobID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

// MyApplications godoc
// @Summary      Postulaciones del estudiante
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.Application
// @Router       /api/applications/my-applications [get]
func (h *Handler) MyApplications(c *fiber.Ctx) error {
	return c.JSON(h.b.StudentApplications(GetUserID(c)))
}

// CompanyApplications godoc
// @Summary      Postulaciones a las ofertas de la empresa
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.Application
// @Router       /api/applications/company/all [get]
func (h *Handler) CompanyApplications(c *fiber.Ctx) error {
	return c.JSON(h.b.CompanyApplications(GetUserID(c)))
}

// JobApplications godoc
// @Summary      Postulaciones de una oferta
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Job ID"
// @Success      200  {array}  entity.Application
// @Failure      403  {object}  dto.APIError
// @Router       /api/applications/job/{id} [get]
func (h *Handler) JobApplications(c *fiber.Ctx) error {
	apps, err := h.b.JobApplications(GetActor(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(apps)
}

// UpdateApplicationStatus godoc
// @Summary      Cambiar estado de una postulación
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string            true  "Application ID"
// @Param        body  body  dto.StatusUpdate  true  "SHORTLISTED | HIRED | REJECTED"
// @Success      200   {object}  entity.Application
// @Failure      400   {object}  dto.APIError
// @Failure      403   {object}  dto.APIError
// @Router       /api/applications/{id}/status [put]
func (h *Handler) UpdateApplicationStatus(c *fiber.Ctx) error {
	var in dto.StatusUpdate
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	app, err := h.b.UpdateApplicationStatus(GetActor(c), c.Params("id"), entity.ApplicationStatus(in.Status))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(app)
}

// ─── Students ─────────────────────────────────────────────────────────────────

// Profile godoc
// @Summary      Perfil del estudiante
// @Tags         students
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.StudentProfile
// @Router       /api/students/profile [get]
func (h *Handler) Profile(c *fiber.Ctx) error {
	p, err := h.b.Profile(GetUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(p)
}

// UpdateProfile godoc
// @Summary      Actualizar perfil del estudiante
// @Tags         students
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ProfileUpdate  true  "perfil"
// @Success      200   {object}  entity.StudentProfile
// @Failure      400   {object}  dto.APIError
// @Router       /api/students/profile [put]
func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.ProfileUpdate
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	p, err := h.b.UpdateProfile(GetUserID(c), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(p)
}

// UploadResume godoc
// @Summary      Subir currículum PDF
// @Tags         students
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        resume  formData  file  true  "PDF, máx. 5MB"
// @Success      200     {object}  dto.UploadResponse
// @Failure      400     {object}  dto.APIError
// @Router       /api/upload/resume [post]
func (h *Handler) UploadResume(c *fiber.Ctx) error {
	fh, err := c.FormFile("resume")
	if err != nil {
		return reject(c, fiber.StatusBadRequest, "VALIDATION", "No file uploaded")
	}
	if fh.Size > h.b.opts.ResumeMaxBytes {
		return reject(c, fiber.StatusBadRequest, "VALIDATION", "File size should be less than 5MB")
	}
	f, err := fh.Open()
	if err != nil {
		return h.fail(c, err)
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, h.b.opts.ResumeMaxBytes+1))
	if err != nil {
		return h.fail(c, err)
	}
	out, err := h.b.UploadResume(GetUserID(c), content)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Upload sirve un currículum subido.
func (h *Handler) Upload(c *fiber.Ctx) error {
	data, ok := h.b.Upload(c.Params("name"))
	if !ok {
		return reject(c, fiber.StatusNotFound, "NOT_FOUND", "File not found")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(data)
}

// ─── Admin ────────────────────────────────────────────────────────────────────

// AdminStats godoc
// @Summary      Totales de la plataforma
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.AdminStats
// @Router       /api/admin/stats [get]
func (h *Handler) AdminStats(c *fiber.Ctx) error {
	return c.JSON(h.b.Stats())
}

// Users godoc
// @Summary      Listar cuentas
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.Account
// @Router       /api/admin/users [get]
func (h *Handler) Users(c *fiber.Ctx) error {
	return c.JSON(h.b.Users())
}

// UpdateUserStatus godoc
// @Summary      Moderar cuenta
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string            true  "User ID"
// @Param        body  body  dto.StatusUpdate  true  "ACTIVE | BLOCKED | PENDING | REJECTED"
// @Success      200   {object}  dto.MessageResponse
// @Failure      403   {object}  dto.APIError
// @Router       /api/admin/users/{id}/status [put]
func (h *Handler) UpdateUserStatus(c *fiber.Ctx) error {
	var in dto.StatusUpdate
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	if err := h.b.SetUserStatus(c.Params("id"), entity.AccountStatus(in.Status)); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "User status updated"})
}

// DeleteUser godoc
// @Summary      Eliminar cuenta
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "User ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.APIError
// @Router       /api/admin/users/{id} [delete]
func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	if err := h.b.DeleteUser(c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted successfully"})
}

// PlacementReport godoc
// @Summary      Reporte de colocación
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.PlacementRow
// @Router       /api/admin/reports/placement [get]
func (h *Handler) PlacementReport(c *fiber.Ctx) error {
	return c.JSON(h.b.PlacementReport())
}

// ─── Analytics ────────────────────────────────────────────────────────────────

// PlatformAnalytics godoc
// @Summary      Métricas de la plataforma
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.AdminStats
// @Router       /api/analytics/stats [get]
func (h *Handler) PlatformAnalytics(c *fiber.Ctx) error {
	return c.JSON(h.b.Stats())
}

// StudentAnalytics godoc
// @Summary      Métricas del estudiante
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.StudentStats
// @Router       /api/analytics/student [get]
func (h *Handler) StudentAnalytics(c *fiber.Ctx) error {
	return c.JSON(h.b.StudentStats(GetUserID(c)))
}

// CompanyAnalytics godoc
// @Summary      Métricas de la empresa
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.CompanyStats
// @Router       /api/analytics/company [get]
func (h *Handler) CompanyAnalytics(c *fiber.Ctx) error {
	return c.JSON(h.b.CompanyStats(GetUserID(c)))
}
