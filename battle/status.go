// Package battle implements the negotiation workflow that advances a
// BattleRequest from challenge to completion: discrete transitions guarded
// by the row's current status, the studio-matching rule, and the reminder
// sweep. Handlers stay thin; every rule lives here.
package battle

// BattleRequest statuses.
const (
	StatusPending            = "PENDING"
	StatusChallengerAccepted = "CHALLENGER_ACCEPTED"
	StatusStudioPending      = "STUDIO_PENDING"
	StatusConfirmed          = "CONFIRMED"
	StatusStudioRejected     = "STUDIO_REJECTED"
	StatusRejected           = "REJECTED"
	StatusBattleScheduled    = "BATTLE_SCHEDULED"
	StatusCompleted          = "COMPLETED"
)

// Actions accepted by PATCH /battles/:id.
const (
	ActionAccept        = "ACCEPT"
	ActionReject        = "REJECT"
	ActionSelectStudios = "SELECT_STUDIOS"
	ActionStudioApprove = "STUDIO_APPROVE"
	ActionStudioReject  = "STUDIO_REJECT"
	ActionAssignReferee = "ASSIGN_REFEREE"
	ActionComplete      = "COMPLETE"
)

// ValidStatus reports whether s names a known status, for list filtering.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusChallengerAccepted, StatusStudioPending,
		StatusConfirmed, StatusStudioRejected, StatusRejected,
		StatusBattleScheduled, StatusCompleted:
		return true
	}
	return false
}

// terminal statuses admit no further transition of any kind.
func terminal(status string) bool {
	switch status {
	case StatusRejected, StatusStudioRejected, StatusCompleted:
		return true
	}
	return false
}
