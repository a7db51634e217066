package lifecycle

import "github.com/jhoicas/placement-portal/internal/domain/entity"

// AccountAction botón de moderación sobre una cuenta.
type AccountAction struct {
	Label  string               `json:"label"`
	Target entity.AccountStatus `json:"target"`
}

// AccountActions acciones del panel de usuarios:
// PENDING -> Approve/Reject, ACTIVE (no admin) -> Block, BLOCKED -> Unblock.
func AccountActions(a entity.Account) []AccountAction {
	switch a.Status {
	case entity.AccountPending:
		return []AccountAction{
			{Label: "Approve", Target: entity.AccountActive},
			{Label: "Reject", Target: entity.AccountRejected},
		}
	case entity.AccountActive:
		if a.IsAdmin() {
			return nil
		}
		return []AccountAction{{Label: "Block", Target: entity.AccountBlocked}}
	case entity.AccountBlocked:
		return []AccountAction{{Label: "Unblock", Target: entity.AccountActive}}
	default:
		return nil
	}
}

// OffersAccount indica si existe un control para llevar la cuenta a target.
func OffersAccount(a entity.Account, target entity.AccountStatus) bool {
	for _, act := range AccountActions(a) {
		if act.Target == target {
			return true
		}
	}
	return false
}

// CanDelete las cuentas admin nunca se eliminan desde el cliente.
func CanDelete(a entity.Account) bool {
	return !a.IsAdmin()
}
