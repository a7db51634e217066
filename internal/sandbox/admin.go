package sandbox

import (
	"github.com/jhoicas/placement-portal/internal/domain/entity"
	"github.com/jhoicas/placement-portal/internal/domain/lifecycle"
)

// RecentLimit postulaciones recientes en los dashboards.
const RecentLimit = 5

// Stats totales de la plataforma. PlacedStudents cuenta estudiantes distintos con HIRED.
func (b *Backend) Stats() *entity.AdminStats {
	b.st.mu.RLock()
	defer b.st.mu.RUnlock()
	out := &entity.AdminStats{TotalJobs: len(b.st.jobs), TotalApplications: len(b.st.apps)}
	for _, u := range b.st.users {
		switch u.Role {
		case RoleStudent:
			out.TotalStudents++
		case RoleCompany:
			out.TotalCompanies++
		}
	}
	placed := make(map[string]struct{})
	for _, a := range b.st.apps {
		if a.Status == entity.StatusHired {
			placed[a.StudentID] = struct{}{}
		}
	}
	out.PlacedStudents = len(placed)
	return out
}

// Users todas las cuentas, más recientes primero.
func (b *Backend) Users() []entity.Account {
	b.st.mu.RLock()
	defer b.st.mu.RUnlock()
	out := make([]entity.Account, 0, len(b.st.users))
	for _, u := range b.st.users {
		out = append(out, u.account())
	}
	sortAccounts(out)
	return out
}

// SetUserStatus modera una cuenta; las cuentas admin no se tocan.
func (b *Backend) SetUserStatus(id string, status entity.AccountStatus) error {
	switch status {
	case entity.AccountActive, entity.AccountBlocked, entity.AccountPending, entity.AccountRejected:
	default:
		return badRequest("Invalid status")
	}
	b.st.mu.Lock()
	defer b.st.mu.Unlock()
	u, ok := b.st.users[id]
	if !ok {
		return notFound("User not found")
	}
	if !lifecycle.CanDelete(u.account()) {
		return forbidden("Cannot modify admin accounts")
	}
	u.Status = status
	b.log.Info().Str("user_id", id).Str("status", string(status)).Msg("estado de cuenta actualizado")
	return nil
}

// DeleteUser elimina la cuenta junto con sus ofertas y postulaciones.
func (b *Backend) DeleteUser(id string) error {
	b.st.mu.Lock()
	defer b.st.mu.Unlock()
	u, ok := b.st.users[id]
	if !ok {
		return notFound("User not found")
	}
	if !lifecycle.CanDelete(u.account()) {
		return forbidden("Cannot delete admin accounts")
	}
	for jobID, j := range b.st.jobs {
		if j.CompanyID == id {
			b.st.deleteJob(jobID)
		}
	}
	for appID, a := range b.st.apps {
		if a.StudentID == id {
			delete(b.st.apps, appID)
		}
	}
	delete(b.st.users, id)
	delete(b.st.byEmail, u.Email)
	return nil
}

// PlacementReport una fila por postulación, más recientes primero.
func (b *Backend) PlacementReport() []entity.PlacementRow {
	b.st.mu.RLock()
	defer b.st.mu.RUnlock()
	apps := b.st.appsWhere(func(*entity.Application) bool { return true })
	out := make([]entity.PlacementRow, 0, len(apps))
	for _, a := range apps {
		row := entity.PlacementRow{StudentName: a.CandidateName(), Status: a.Status, AppliedAt: a.AppliedAt}
		if a.Student != nil && a.Student.User != nil {
			row.StudentEmail = a.Student.User.Email
		}
		if a.Job != nil {
			row.JobTitle = a.Job.Title
			if a.Job.Company != nil {
				row.CompanyName = a.Job.Company.CompanyName
			}
		}
		out = append(out, row)
	}
	return out
}

// StudentStats tarjetas del dashboard de estudiante.
func (b *Backend) StudentStats(studentID string) *entity.StudentStats {
	apps := b.StudentApplications(studentID)
	out := &entity.StudentStats{TotalApplied: len(apps), RecentApplications: recent(apps)}
	for _, a := range apps {
		switch a.Status {
		case entity.StatusHired:
			out.HiredCount++
		case entity.StatusShortlisted:
			out.ShortlistedCount++
		case entity.StatusRejected:
			out.RejectedCount++
		}
	}
	return out
}

// CompanyStats tarjetas del dashboard de empresa.
func (b *Backend) CompanyStats(companyID string) *entity.CompanyStats {
	jobs := b.CompanyJobs(companyID)
	apps := b.CompanyApplications(companyID)
	out := &entity.CompanyStats{TotalJobs: len(jobs), TotalApps: len(apps), RecentApplications: recent(apps)}
	for _, j := range jobs {
		if j.IsOpen() {
			out.OpenJobs++
		}
	}
	for _, a := range apps {
		switch a.Status {
		case entity.StatusHired:
			out.HiredCount++
		case entity.StatusShortlisted:
			out.ShortlistedCount++
		}
	}
	return out
}

func recent(apps []entity.Application) []entity.Application {
	if len(apps) > RecentLimit {
		apps = apps[:RecentLimit]
	}
	return append([]entity.Application{}, apps...)
}
