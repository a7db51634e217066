package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/placement-portal/internal/application/dto"
	"github.com/jhoicas/placement-portal/internal/application/student"
)

// StudentHandler páginas del estudiante.
type StudentHandler struct {
	svc       *student.Service
	views     *ViewCache
	maxResume int64
}

// NewStudentHandler construye el handler.
func NewStudentHandler(svc *student.Service, views *ViewCache, maxResume int64) *StudentHandler {
	return &StudentHandler{svc: svc, views: views, maxResume: maxResume}
}

// ApplyResponse resultado de una postulación con el nuevo estado del botón.
type ApplyResponse struct {
	Message string              `json:"message"`
	Button  student.ButtonState `json:"button"`
}

// Dashboard godoc
// @Summary      Tarjetas del estudiante
// @Tags         student
// @Produce      json
// @Success      200  {object}  entity.StudentStats
// @Router       /student/dashboard [get]
func (h *StudentHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.svc.Dashboard(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Jobs godoc
// @Summary      Ofertas abiertas con búsqueda
// @Tags         student
// @Produce      json
// @Param        q    query  string  false  "título, empresa o descripción"
// @Success      200  {array}  student.JobCard
// @Router       /student/jobs [get]
func (h *StudentHandler) Jobs(c *fiber.Ctx) error {
	view, err := h.views.StudentJobs(c.UserContext(), h.svc, true)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view.Visible(c.Query("q")))
}

// Apply godoc
// @Summary      Postularse a una oferta
// @Tags         student
// @Produce      json
// @Param        id   path  string  true  "Job ID"
// @Success      200  {object}  ApplyResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /student/jobs/{id}/apply [post]
func (h *StudentHandler) Apply(c *fiber.Ctx) error {
	view, err := h.views.StudentJobs(c.UserContext(), h.svc, false)
	if err != nil {
		return writeError(c, err)
	}
	jobID := c.Params("id")
	if err := view.Apply(c.UserContext(), jobID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(ApplyResponse{Message: student.MsgApplied, Button: view.Button(jobID)})
}

// Applications godoc
// @Summary      Mis postulaciones
// @Tags         student
// @Produce      json
// @Success      200  {array}  entity.Application
// @Router       /student/applications [get]
func (h *StudentHandler) Applications(c *fiber.Ctx) error {
	out, err := h.svc.Applications(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Profile godoc
// @Summary      Perfil del estudiante
// @Tags         student
// @Produce      json
// @Success      200  {object}  student.ProfileView
// @Router       /student/profile [get]
func (h *StudentHandler) Profile(c *fiber.Ctx) error {
	out, err := h.svc.Profile(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SaveProfile godoc
// @Summary      Guardar perfil (skills separadas por coma)
// @Tags         student
// @Accept       json
// @Produce      json
// @Param        body  body  student.ProfileForm  true  "perfil"
// @Success      200   {object}  student.ProfileView
// @Router       /student/profile [put]
func (h *StudentHandler) SaveProfile(c *fiber.Ctx) error {
	var form student.ProfileForm
	if err := c.BodyParser(&form); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.SaveProfile(c.UserContext(), form)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UploadResume godoc
// @Summary      Subir currículum PDF
// @Tags         student
// @Accept       multipart/form-data
// @Produce      json
// @Param        resume  formData  file  true  "PDF, máx. 5MB"
// @Success      200     {object}  student.ProfileView
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      413     {object}  dto.ErrorResponse
// @Router       /student/profile/resume [post]
func (h *StudentHandler) UploadResume(c *fiber.Ctx) error {
	fh, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo resume requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()
	// un byte extra basta para que CheckResume detecte el exceso
	content, err := io.ReadAll(io.LimitReader(f, h.maxResume+1))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.UploadResume(c.UserContext(), fh.Filename, content)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
