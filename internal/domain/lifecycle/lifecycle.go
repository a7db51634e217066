// Package lifecycle refleja en el cliente la máquina de estados de postulaciones y
// cuentas. El backend es la autoridad; aquí solo se decide qué acciones se ofrecen.
//
//	APPLIED -> SHORTLISTED -> HIRED
//	APPLIED -> REJECTED
//	SHORTLISTED -> REJECTED   (legal, ninguna acción de la UI lo expone)
package lifecycle

import "github.com/jhoicas/placement-portal/internal/domain/entity"

// Initial estado con el que nace toda postulación.
const Initial = entity.StatusApplied

var transitions = map[entity.ApplicationStatus][]entity.ApplicationStatus{
	entity.StatusApplied:     {entity.StatusShortlisted, entity.StatusRejected},
	entity.StatusShortlisted: {entity.StatusHired, entity.StatusRejected},
}

// Action botón de cambio de estado ofrecido a la empresa.
type Action struct {
	Label  string                   `json:"label"`
	Target entity.ApplicationStatus `json:"target"`
}

// companyActions aristas hacia adelante que la empresa puede disparar.
// SHORTLISTED -> REJECTED queda fuera a propósito: es legal pero no tiene control.
var companyActions = map[entity.ApplicationStatus][]Action{
	entity.StatusApplied: {
		{Label: "Shortlist", Target: entity.StatusShortlisted},
		{Label: "Reject", Target: entity.StatusRejected},
	},
	entity.StatusShortlisted: {
		{Label: "Mark as Hired", Target: entity.StatusHired},
	},
}

// IsKnown indica si el estado pertenece a la máquina.
func IsKnown(s entity.ApplicationStatus) bool {
	switch s {
	case entity.StatusApplied, entity.StatusShortlisted, entity.StatusHired, entity.StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal HIRED y REJECTED no tienen salida.
func IsTerminal(s entity.ApplicationStatus) bool {
	return s == entity.StatusHired || s == entity.StatusRejected
}

// CanTransition legalidad de una arista del modelo (incluye la latente SHORTLISTED -> REJECTED).
func CanTransition(from, to entity.ApplicationStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CompanyActions acciones que la vista de candidatos ofrece para un estado.
func CompanyActions(s entity.ApplicationStatus) []Action {
	actions := companyActions[s]
	out := make([]Action, len(actions))
	copy(out, actions)
	return out
}

// Offers indica si la empresa tiene un control para llevar la postulación a target.
func Offers(current, target entity.ApplicationStatus) bool {
	for _, a := range companyActions[current] {
		if a.Target == target {
			return true
		}
	}
	return false
}
