package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/jhoicas/placement-portal/internal/application/dto"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
)

// UploadsPrefix ruta pública de los currículums subidos.
const UploadsPrefix = "/uploads/"

// Profile perfil del estudiante con su email.
func (b *Backend) Profile(studentID string) (*entity.StudentProfile, error) {
	b.st.mu.RLock()
	defer b.st.mu.RUnlock()
	u, ok := b.st.users[studentID]
	if !ok || u.Role != RoleStudent {
		return nil, notFound("Profile not found")
	}
	return profileOf(u), nil
}

// UpdateProfile reemplaza los campos editables. ResumeURL solo cambia vía upload.
func (b *Backend) UpdateProfile(studentID string, in dto.ProfileUpdate) (*entity.StudentProfile, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, badRequest("First name and last name are required")
	}
	skills := make([]string, 0, len(in.Skills))
	for _, s := range in.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}

	b.st.mu.Lock()
	defer b.st.mu.Unlock()
	u, ok := b.st.users[studentID]
	if !ok || u.Role != RoleStudent {
		return nil, notFound("Profile not found")
	}
	resume := u.Profile.ResumeURL
	u.Profile = entity.StudentProfile{
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		Phone:          in.Phone,
		Location:       in.Location,
		About:          in.About,
		University:     in.University,
		GraduationYear: in.GraduationYear,
		Skills:         skills,
		ResumeURL:      resume,
	}
	return profileOf(u), nil
}

// UploadResume valida que el contenido sea PDF y no exceda el límite, lo guarda y
// actualiza resumeUrl del perfil.
func (b *Backend) UploadResume(studentID string, content []byte) (*dto.UploadResponse, error) {
	if len(content) == 0 {
		return nil, badRequest("No file uploaded")
	}
	if int64(len(content)) > b.opts.ResumeMaxBytes {
		return nil, badRequest("File size should be less than 5MB")
	}
	if !mimetype.Detect(content).Is("application/pdf") {
		return nil, badRequest("Only PDF files are allowed")
	}

	name := uuid.New().String() + ".pdf"
	if dir := b.opts.UploadsDir; dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio de uploads: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
			return nil, fmt.Errorf("guardar currículum: %w", err)
		}
	}

	b.st.mu.Lock()
	defer b.st.mu.Unlock()
	u, ok := b.st.users[studentID]
	if !ok || u.Role != RoleStudent {
		return nil, notFound("Profile not found")
	}
	if b.opts.UploadsDir == "" {
		b.st.uploads[name] = content
	}
	u.Profile.ResumeURL = UploadsPrefix + name
	return &dto.UploadResponse{Message: "Resume uploaded successfully", ResumeURL: u.Profile.ResumeURL}, nil
}

// Upload contenido de un currículum subido; found=false si no existe.
func (b *Backend) Upload(name string) ([]byte, bool) {
	name = filepath.Base(name)
	if b.opts.UploadsDir != "" {
		data, err := os.ReadFile(filepath.Join(b.opts.UploadsDir, name))
		return data, err == nil
	}
	b.st.mu.RLock()
	defer b.st.mu.RUnlock()
	data, ok := b.st.uploads[name]
	return data, ok
}

func profileOf(u *userRecord) *entity.StudentProfile {
	p := u.Profile
	p.Skills = append([]string{}, u.Profile.Skills...)
	p.User = &entity.UserEmail{Email: u.Email}
	return &p
}
