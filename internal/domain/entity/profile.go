package entity

// StudentProfile perfil editable del estudiante.
type StudentProfile struct {
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Phone          string     `json:"phone,omitempty"`
	Location       string     `json:"location,omitempty"`
	About          string     `json:"about,omitempty"`
	University     string     `json:"university,omitempty"`
	GraduationYear string     `json:"graduationYear,omitempty"`
	Skills         []string   `json:"skills"`
	ResumeURL      string     `json:"resumeUrl,omitempty"`
	User           *UserEmail `json:"user,omitempty"`
}

// FullName "Nombre Apellido" o "Student" si ambos están vacíos.
func (p StudentProfile) FullName() string {
	name := p.FirstName
	if p.LastName != "" {
		if name != "" {
			name += " "
		}
		name += p.LastName
	}
	if name == "" {
		return "Student"
	}
	return name
}
