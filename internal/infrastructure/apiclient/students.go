package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/jhoicas/placement-portal/internal/application/dto"
	"github.com/jhoicas/placement-portal/internal/application/ports"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
)

var _ ports.StudentsAPI = (*StudentsClient)(nil)

// ResumeField nombre del campo multipart del currículum.
const ResumeField = "resume"

// StudentsClient perfil y currículum.
type StudentsClient struct{ c *Client }

func (s *StudentsClient) Profile(ctx context.Context) (*entity.StudentProfile, error) {
	var out entity.StudentProfile
	if err := s.c.doJSON(ctx, http.MethodGet, "/students/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *StudentsClient) UpdateProfile(ctx context.Context, in dto.ProfileUpdate) (*entity.StudentProfile, error) {
	var out entity.StudentProfile
	if err := s.c.doJSON(ctx, http.MethodPut, "/students/profile", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadResume POST /upload/resume como multipart; sin Content-Type JSON.
func (s *StudentsClient) UploadResume(ctx context.Context, filename string, content []byte) (*dto.UploadResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, ResumeField, filepath.Base(filename)))
	h.Set("Content-Type", "application/pdf")
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, &RequestError{Message: UploadFallbackMessage, Err: err}
	}
	if _, err := part.Write(content); err != nil {
		return nil, &RequestError{Message: UploadFallbackMessage, Err: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &RequestError{Message: UploadFallbackMessage, Err: err}
	}

	var out dto.UploadResponse
	if err := s.c.do(ctx, http.MethodPost, "/upload/resume", &buf, mw.FormDataContentType(), UploadFallbackMessage, &out); err != nil {
		return nil, err
	}
	out.ResumeURL = strings.TrimSpace(out.ResumeURL)
	return &out, nil
}
