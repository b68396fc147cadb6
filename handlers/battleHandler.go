package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"dansarena/battle"
	"dansarena/middlewares"
	"dansarena/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateBattleHandler handles POST /battles. Dancer role only (enforced by
// the route's RequireRole middleware).
func CreateBattleHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	claims, ok := middlewares.GetClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var req models.CreateBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	br, err := battle.Create(db, claims.UserID, req)
	if err != nil {
		respondBattleError(c, logger, err)
		return
	}

	logger.Info("battle created",
		zap.Uint("battleID", br.ID),
		zap.Uint("initiatorID", br.InitiatorID),
		zap.Uint("challengedID", br.ChallengedID))
	respondOK(c, http.StatusCreated, "challenge sent", br)
}

// ListBattlesHandler handles GET /battles. The visible set depends on the
// caller's role: admins see everything, referees their assignments, studio
// accounts the battles booked at their studio, everyone else the battles
// they participate in. Optional status filter plus page/limit pagination.
func ListBattlesHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	claims, ok := middlewares.GetClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing bearer token")
		return
	}

	query := db.Model(&models.BattleRequest{})
	switch claims.Role {
	case models.RoleAdmin:
		// unrestricted
	case models.RoleReferee:
		query = query.Where("referee_id = ?", claims.UserID)
	case models.RoleStudio:
		var studio models.Studio
		err := db.Where("owner_id = ?", claims.UserID).First(&studio).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A studio account without a studio row sees nothing.
			respondOK(c, http.StatusOK, "", gin.H{"items": []models.BattleRequest{}, "total": 0})
			return
		}
		if err != nil {
			logger.Error("failed to load owner studio", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "failed to list battles")
			return
		}
		query = query.Where("selected_studio_id = ?", studio.ID)
	default:
		query = query.Where("initiator_id = ? OR challenged_id = ?", claims.UserID, claims.UserID)
	}

	if status := c.Query("status"); status != "" {
		if !battle.ValidStatus(status) {
			respondError(c, http.StatusBadRequest, "unknown status filter")
			return
		}
		query = query.Where("status = ?", status)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("failed to count battles", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list battles")
		return
	}

	var battles []models.BattleRequest
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&battles).Error; err != nil {
		logger.Error("failed to list battles", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list battles")
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{
		"items": battles,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetBattleHandler handles GET /battles/:id. Visible to the participants,
// the selected studio's owner, the assigned referee, and admins.
func GetBattleHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	claims, ok := middlewares.GetClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing bearer token")
		return
	}
	battleID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid battle id")
		return
	}

	var br models.BattleRequest
	if err := db.First(&br, battleID).Error; err != nil {
		respondBattleError(c, logger, err)
		return
	}

	if !canViewBattle(db, &br, claims) {
		respondError(c, http.StatusForbidden, "not your battle")
		return
	}
	respondOK(c, http.StatusOK, "", br)
}

// BattleActionHandler handles PATCH /battles/:id and dispatches on the
// action name. All validation and state logic lives in the battle package.
func BattleActionHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	claims, ok := middlewares.GetClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing bearer token")
		return
	}
	battleID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid battle id")
		return
	}

	var req models.BattleActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var br *models.BattleRequest
	switch req.Action {
	case battle.ActionAccept:
		br, err = battle.Accept(db, battleID, claims.UserID)
	case battle.ActionReject:
		br, err = battle.Reject(db, battleID, claims.UserID)
	case battle.ActionSelectStudios:
		br, err = battle.SelectStudios(db, battleID, claims.UserID, req.StudioIDs)
	case battle.ActionStudioApprove:
		br, err = battle.StudioApprove(db, battleID, claims, battle.ScheduleInput{
			Date:     req.Date,
			Time:     req.Time,
			Location: req.Location,
			Duration: req.Duration,
		})
	case battle.ActionStudioReject:
		br, err = battle.StudioReject(db, battleID, claims)
	case battle.ActionAssignReferee:
		br, err = battle.AssignReferee(db, battleID, claims, req.RefereeID)
	case battle.ActionComplete:
		br, err = battle.Complete(db, battleID, claims, req.InitiatorNoShow, req.ChallengedNoShow)
	default:
		respondError(c, http.StatusBadRequest, "unknown action")
		return
	}
	if err != nil {
		respondBattleError(c, logger, err)
		return
	}

	logger.Info("battle transition",
		zap.Uint("battleID", br.ID),
		zap.String("action", req.Action),
		zap.String("status", br.Status),
		zap.Uint("actorID", claims.UserID))
	respondOK(c, http.StatusOK, "battle updated", br)
}

func canViewBattle(db *gorm.DB, br *models.BattleRequest, claims *models.MyClaims) bool {
	if claims.Role == models.RoleAdmin || br.IsParticipant(claims.UserID) {
		return true
	}
	if br.RefereeID != nil && *br.RefereeID == claims.UserID {
		return true
	}
	if br.SelectedStudioID != nil && claims.Role == models.RoleStudio {
		var studio models.Studio
		if err := db.First(&studio, *br.SelectedStudioID).Error; err == nil {
			return studio.OwnerID == claims.UserID
		}
	}
	return false
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
