package battle

import (
	"errors"
	"fmt"
	"time"

	"dansarena/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleInput carries the booking details a studio submits on approval.
type ScheduleInput struct {
	Date     string // "2006-01-02"
	Time     string // "15:04"
	Location string
	Duration int // minutes, 0 means the 60-minute default
}

const defaultDurationMinutes = 60

func loadBattle(tx *gorm.DB, battleID uint) (*models.BattleRequest, error) {
	var br models.BattleRequest
	if err := tx.First(&br, battleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &br, nil
}

// advance performs the status-guarded update that makes every transition
// safe against a concurrent double transition: the UPDATE only matches the
// row while it still holds the expected status, and a zero row count means
// another request won the race.
func advance(tx *gorm.DB, battleID uint, fromStatus string, updates map[string]interface{}) error {
	res := tx.Model(&models.BattleRequest{}).
		Where("id = ? AND status = ?", battleID, fromStatus).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

// Create opens a new challenge from initiatorID against req.ChallengedID
// and notifies the challenged dancer. Self-challenges and challenges
// against non-dancer accounts are rejected.
func Create(db *gorm.DB, initiatorID uint, req models.CreateBattleRequest) (*models.BattleRequest, error) {
	if req.ChallengedID == initiatorID {
		return nil, fmt.Errorf("%w: you cannot challenge yourself", ErrValidation)
	}

	var br *models.BattleRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		var challenged models.User
		if err := tx.First(&challenged, req.ChallengedID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: challenged user not found", ErrValidation)
			}
			return err
		}
		if challenged.Role != models.RoleDancer {
			return fmt.Errorf("%w: challenged user is not a dancer", ErrValidation)
		}

		br = &models.BattleRequest{
			ShareCode:    uuid.New().String(),
			InitiatorID:  initiatorID,
			ChallengedID: req.ChallengedID,
			DanceStyle:   req.DanceStyle,
			Description:  req.Description,
			Status:       StatusPending,
		}
		if err := tx.Create(br).Error; err != nil {
			return err
		}
		return notify(tx, br.ChallengedID, models.NotificationBattleInvite,
			"New battle challenge",
			"A dancer has challenged you to a battle.", br.ID)
	})
	if err != nil {
		return nil, err
	}
	return br, nil
}

// Accept moves PENDING to CHALLENGER_ACCEPTED. Only the challenged dancer
// may accept, and only while the challenge is still pending.
func Accept(db *gorm.DB, battleID, actorID uint) (*models.BattleRequest, error) {
	var br *models.BattleRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		br, err = loadBattle(tx, battleID)
		if err != nil {
			return err
		}
		if !br.IsParticipant(actorID) {
			return ErrNotParticipant
		}
		if actorID != br.ChallengedID {
			return fmt.Errorf("%w: only the challenged dancer can accept", ErrForbidden)
		}
		if br.Status != StatusPending {
			return fmt.Errorf("%w: battle is %s", ErrInvalidState, br.Status)
		}

		if err := advance(tx, br.ID, StatusPending, map[string]interface{}{
			"status": StatusChallengerAccepted,
		}); err != nil {
			return err
		}
		br.Status = StatusChallengerAccepted

		return notify(tx, br.InitiatorID, models.NotificationBattleAccepted,
			"Challenge accepted",
			"Your challenge was accepted. Pick your preferred studios.", br.ID)
	})
	if err != nil {
		return nil, err
	}
	return br, nil
}

// Reject moves any pre-terminal status to REJECTED. Either participant may
// reject; the other one is notified.
func Reject(db *gorm.DB, battleID, actorID uint) (*models.BattleRequest, error) {
	var br *models.BattleRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		br, err = loadBattle(tx, battleID)
		if err != nil {
			return err
		}
		if !br.IsParticipant(actorID) {
			return ErrNotParticipant
		}
		if terminal(br.Status) {
			return fmt.Errorf("%w: battle is %s", ErrInvalidState, br.Status)
		}

		// A rejected battle holds no venue or schedule: selected_studio_id
		// is only ever set in STUDIO_PENDING and later, the scheduling
		// fields only from CONFIRMED on.
		if err := advance(tx, br.ID, br.Status, map[string]interface{}{
			"status":             StatusRejected,
			"selected_studio_id": nil,
			"scheduled_date":     nil,
			"scheduled_time":     "",
			"location":           "",
			"duration_minutes":   0,
		}); err != nil {
			return err
		}
		br.Status = StatusRejected
		br.SelectedStudioID = nil
		br.ScheduledDate = nil
		br.ScheduledTime = ""
		br.Location = ""
		br.DurationMinutes = 0

		return notify(tx, br.OtherParticipant(actorID), models.NotificationBattleRejected,
			"Battle rejected",
			"The other dancer has withdrawn from the battle.", br.ID)
	})
	if err != nil {
		return nil, err
	}
	return br, nil
}

// SelectStudios replaces the actor's ranked studio preferences for the
// battle and, once both participants have submitted, resolves a common
// studio. Everything runs in one transaction so two simultaneous
// submissions cannot both read the other side as missing and skip the
// match, or resolve it twice.
func SelectStudios(db *gorm.DB, battleID, actorID uint, studioIDs []uint) (*models.BattleRequest, error) {
	if len(studioIDs) == 0 {
		return nil, fmt.Errorf("%w: studio list must not be empty", ErrValidation)
	}
	seen := make(map[uint]struct{}, len(studioIDs))
	for _, id := range studioIDs {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate studio id %d", ErrValidation, id)
		}
		seen[id] = struct{}{}
	}

	var br *models.BattleRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		br, err = loadBattle(tx, battleID)
		if err != nil {
			return err
		}
		if !br.IsParticipant(actorID) {
			return ErrNotParticipant
		}
		if br.Status != StatusChallengerAccepted {
			return fmt.Errorf("%w: battle is %s", ErrInvalidState, br.Status)
		}

		var count int64
		if err := tx.Model(&models.Studio{}).Where("id IN ?", studioIDs).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(studioIDs)) {
			return fmt.Errorf("%w: unknown studio id in list", ErrValidation)
		}

		// Replace, not merge: the prior batch for this (battle, user) pair
		// goes away before the new one is written.
		if err := tx.Where("battle_request_id = ? AND user_id = ?", br.ID, actorID).
			Delete(&models.StudioPreference{}).Error; err != nil {
			return err
		}
		for i, studioID := range studioIDs {
			pref := models.StudioPreference{
				BattleRequestID: br.ID,
				UserID:          actorID,
				StudioID:        studioID,
				Priority:        i + 1,
			}
			if err := tx.Create(&pref).Error; err != nil {
				return err
			}
		}

		var prefs []models.StudioPreference
		if err := tx.Where("battle_request_id = ?", br.ID).Find(&prefs).Error; err != nil {
			return err
		}
		var initiatorPrefs, challengedPrefs []models.StudioPreference
		for _, p := range prefs {
			switch p.UserID {
			case br.InitiatorID:
				initiatorPrefs = append(initiatorPrefs, p)
			case br.ChallengedID:
				challengedPrefs = append(challengedPrefs, p)
			}
		}
		if len(initiatorPrefs) == 0 || len(challengedPrefs) == 0 {
			// Only one side has submitted so far; nothing to resolve yet.
			return nil
		}

		studioID, ok := matchStudio(initiatorPrefs, challengedPrefs)
		if !ok {
			// Disjoint lists: stay in CHALLENGER_ACCEPTED, keep the
			// preferences for the next resubmission.
			return nil
		}

		if err := advance(tx, br.ID, StatusChallengerAccepted, map[string]interface{}{
			"status":             StatusStudioPending,
			"selected_studio_id": studioID,
		}); err != nil {
			return err
		}
		br.Status = StatusStudioPending
		br.SelectedStudioID = &studioID

		var studio models.Studio
		if err := tx.First(&studio, studioID).Error; err != nil {
			return err
		}
		return notifyStudio(tx, studio.OwnerID, models.NotificationStudioRequest,
			"Battle booking request",
			"Two dancers want to hold a battle at your studio.", br.ID, studio.ID)
	})
	if err != nil {
		return nil, err
	}
	return br, nil
}

// StudioApprove moves STUDIO_PENDING to CONFIRMED and records the booking
// details. Only the owner of the selected studio may approve.
func StudioApprove(db *gorm.DB, battleID uint, actor *models.MyClaims, in ScheduleInput) (*models.BattleRequest, error) {
	if actor.Role != models.RoleStudio {
		return nil, fmt.Errorf("%w: studio role required", ErrForbidden)
	}
	if in.Date == "" || in.Time == "" || in.Location == "" {
		return nil, fmt.Errorf("%w: date, time and location are required", ErrValidation)
	}
	scheduledDate, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if _, err := time.Parse("15:04", in.Time); err != nil {
		return nil, fmt.Errorf("%w: time must be HH:MM", ErrValidation)
	}
	duration := in.Duration
	if duration == 0 {
		duration = defaultDurationMinutes
	}
	if duration < 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrValidation)
	}

	var br *models.BattleRequest
	err = db.Transaction(func(tx *gorm.DB) error {
		br, err = loadBattle(tx, battleID)
		if err != nil {
			return err
		}
		if br.Status != StatusStudioPending {
			return fmt.Errorf("%w: battle is %s", ErrInvalidState, br.Status)
		}
		studio, err := selectedStudioOwnedBy(tx, br, actor.UserID)
		if err != nil {
			return err
		}

		if err := advance(tx, br.ID, StatusStudioPending, map[string]interface{}{
			"status":           StatusConfirmed,
			"scheduled_date":   scheduledDate,
			"scheduled_time":   in.Time,
			"location":         in.Location,
			"duration_minutes": duration,
		}); err != nil {
			return err
		}
		br.Status = StatusConfirmed
		br.ScheduledDate = &scheduledDate
		br.ScheduledTime = in.Time
		br.Location = in.Location
		br.DurationMinutes = duration

		msg := fmt.Sprintf("Your battle is confirmed for %s at %s, %s.", in.Date, in.Time, in.Location)
		for _, dancerID := range []uint{br.InitiatorID, br.ChallengedID} {
			if err := notifyStudio(tx, dancerID, models.NotificationStudioApproved,
				"Battle confirmed", msg, br.ID, studio.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return br, nil
}

// StudioReject moves STUDIO_PENDING to STUDIO_REJECTED, a terminal state:
// the participants have to open a new challenge to try again.
func StudioReject(db *gorm.DB, battleID uint, actor *models.MyClaims) (*models.BattleRequest, error) {
	if actor.Role != models.RoleStudio {
		return nil, fmt.Errorf("%w: studio role required", ErrForbidden)
	}

	var br *models.BattleRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		br, err = loadBattle(tx, battleID)
		if err != nil {
			return err
		}
		if br.Status != StatusStudioPending {
			return fmt.Errorf("%w: battle is %s", ErrInvalidState, br.Status)
		}
		studio, err := selectedStudioOwnedBy(tx, br, actor.UserID)
		if err != nil {
			return err
		}

		// The declined studio is unset again: selected_studio_id may only
		// be non-null from STUDIO_PENDING onwards, never in a rejection
		// state.
		if err := advance(tx, br.ID, StatusStudioPending, map[string]interface{}{
			"status":             StatusStudioRejected,
			"selected_studio_id": nil,
		}); err != nil {
			return err
		}
		br.Status = StatusStudioRejected
		br.SelectedStudioID = nil

		for _, dancerID := range []uint{br.InitiatorID, br.ChallengedID} {
			if err := notifyStudio(tx, dancerID, models.NotificationStudioRejected,
				"Studio declined",
				"The studio declined the booking request.", br.ID, studio.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return br, nil
}

// AssignReferee moves CONFIRMED to BATTLE_SCHEDULED. Admin-only; the
// referee id must reference a referee account.
func AssignReferee(db *gorm.DB, battleID uint, actor *models.MyClaims, refereeID uint) (*models.BattleRequest, error) {
	if actor.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	if refereeID == 0 {
		return nil, fmt.Errorf("%w: refereeId is required", ErrValidation)
	}

	var br *models.BattleRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		br, err = loadBattle(tx, battleID)
		if err != nil {
			return err
		}
		if br.Status != StatusConfirmed {
			return fmt.Errorf("%w: battle is %s", ErrInvalidState, br.Status)
		}

		var referee models.User
		if err := tx.First(&referee, refereeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: referee not found", ErrValidation)
			}
			return err
		}
		if referee.Role != models.RoleReferee {
			return fmt.Errorf("%w: user %d is not a referee", ErrValidation, refereeID)
		}

		if err := advance(tx, br.ID, StatusConfirmed, map[string]interface{}{
			"status":     StatusBattleScheduled,
			"referee_id": refereeID,
		}); err != nil {
			return err
		}
		br.Status = StatusBattleScheduled
		br.RefereeID = &refereeID

		for _, userID := range []uint{br.InitiatorID, br.ChallengedID, refereeID} {
			if err := notify(tx, userID, models.NotificationBattleScheduled,
				"Referee assigned",
				"A referee has been assigned to your battle.", br.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return br, nil
}

// Complete moves BATTLE_SCHEDULED to COMPLETED and records the no-show
// flags. Only the assigned referee may complete a battle. Ratings are
// deliberately left untouched; scoring lives outside this service.
func Complete(db *gorm.DB, battleID uint, actor *models.MyClaims, initiatorNoShow, challengedNoShow bool) (*models.BattleRequest, error) {
	var br *models.BattleRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		br, err = loadBattle(tx, battleID)
		if err != nil {
			return err
		}
		if br.Status != StatusBattleScheduled {
			return fmt.Errorf("%w: battle is %s", ErrInvalidState, br.Status)
		}
		if br.RefereeID == nil || *br.RefereeID != actor.UserID {
			return fmt.Errorf("%w: only the assigned referee can complete", ErrForbidden)
		}

		if err := advance(tx, br.ID, StatusBattleScheduled, map[string]interface{}{
			"status":             StatusCompleted,
			"initiator_no_show":  initiatorNoShow,
			"challenged_no_show": challengedNoShow,
		}); err != nil {
			return err
		}
		br.Status = StatusCompleted
		br.InitiatorNoShow = initiatorNoShow
		br.ChallengedNoShow = challengedNoShow

		for _, dancerID := range []uint{br.InitiatorID, br.ChallengedID} {
			if err := notify(tx, dancerID, models.NotificationBattleCompleted,
				"Battle completed",
				"Your battle has been recorded as completed.", br.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return br, nil
}

// selectedStudioOwnedBy loads the battle's selected studio and verifies
// ownership by ownerID.
func selectedStudioOwnedBy(tx *gorm.DB, br *models.BattleRequest, ownerID uint) (*models.Studio, error) {
	if br.SelectedStudioID == nil {
		return nil, fmt.Errorf("%w: no studio selected", ErrInvalidState)
	}
	var studio models.Studio
	if err := tx.First(&studio, *br.SelectedStudioID).Error; err != nil {
		return nil, err
	}
	if studio.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: battle is not booked at your studio", ErrForbidden)
	}
	return &studio, nil
}
