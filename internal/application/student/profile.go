package student

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jhoicas/placement-portal/internal/application/dto"
	"github.com/jhoicas/placement-portal/internal/application/notify"
	"github.com/jhoicas/placement-portal/internal/domain"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
)

// ProfileView perfil con el enlace de currículum ya resuelto.
type ProfileView struct {
	Profile       entity.StudentProfile `json:"profile"`
	FullName      string                `json:"fullName"`
	ResumeLink    string                `json:"resumeLink,omitempty"`
	SkillsDisplay string                `json:"skills"`
}

// ProfileForm formulario de perfil; Skills es la lista separada por comas.
type ProfileForm struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Phone          string `json:"phone"`
	Location       string `json:"location"`
	About          string `json:"about"`
	University     string `json:"university"`
	GraduationYear string `json:"graduationYear"`
	Skills         string `json:"skills"`
}

// Profile carga el perfil.
func (s *Service) Profile(ctx context.Context) (*ProfileView, error) {
	p, err := s.students.Profile(ctx)
	if err != nil {
		return nil, err
	}
	return s.view(*p), nil
}

func (s *Service) view(p entity.StudentProfile) *ProfileView {
	return &ProfileView{
		Profile:       p,
		FullName:      p.FullName(),
		ResumeLink:    s.media(p.ResumeURL),
		SkillsDisplay: strings.Join(p.Skills, ", "),
	}
}

// SplitSkills parte por comas, recorta y descarta vacíos.
func SplitSkills(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SaveProfile guarda el formulario y devuelve el perfil refrescado.
func (s *Service) SaveProfile(ctx context.Context, form ProfileForm) (*ProfileView, error) {
	in := dto.ProfileUpdate{
		FirstName:      form.FirstName,
		LastName:       form.LastName,
		Phone:          form.Phone,
		Location:       form.Location,
		About:          form.About,
		University:     form.University,
		GraduationYear: form.GraduationYear,
		Skills:         SplitSkills(form.Skills),
	}
	if _, err := s.students.UpdateProfile(ctx, in); err != nil {
		notify.Failure(s.notify, err, MsgProfileFailed)
		return nil, err
	}
	s.notify.Success(MsgProfileSaved)
	return s.Profile(ctx)
}

// CheckResume valida el archivo antes de subirlo: contenido PDF y tamaño máximo.
func (s *Service) CheckResume(content []byte) error {
	if mt := mimetype.Detect(content); !mt.Is("application/pdf") {
		return fmt.Errorf("%w: detectado %s", domain.ErrNotPDF, mt.String())
	}
	if int64(len(content)) > s.maxResume {
		return fmt.Errorf("%w: %d bytes", domain.ErrFileTooLarge, len(content))
	}
	return nil
}

// UploadResume valida, sube y refresca el perfil para obtener el nuevo enlace.
func (s *Service) UploadResume(ctx context.Context, filename string, content []byte) (*ProfileView, error) {
	if err := s.CheckResume(content); err != nil {
		if errors.Is(err, domain.ErrNotPDF) {
			s.notify.Error(MsgResumeNotPDF)
		} else {
			s.notify.Error(MsgResumeTooLarge)
		}
		return nil, err
	}
	if _, err := s.students.UploadResume(ctx, filename, content); err != nil {
		notify.Failure(s.notify, err, MsgResumeFailed)
		return nil, err
	}
	s.notify.Success(MsgResumeUploaded)
	s.log.Info().Int("bytes", len(content)).Msg("currículum subido")
	return s.Profile(ctx)
}
