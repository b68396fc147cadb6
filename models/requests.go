package models

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Nickname   string `json:"nickname" binding:"required"`
	Role       string `json:"role" binding:"required"`
	DanceStyle string `json:"danceStyle"`
	City       string `json:"city"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateBattleRequest is the body of POST /battles.
type CreateBattleRequest struct {
	ChallengedID uint   `json:"challengedId" binding:"required"`
	DanceStyle   string `json:"danceStyle"`
	Description  string `json:"description"`
}

// BattleActionRequest is the body of PATCH /battles/:id. Which fields are
// required depends on Action; the battle package validates them.
type BattleActionRequest struct {
	Action           string `json:"action" binding:"required"`
	StudioIDs        []uint `json:"studioIds"`
	Date             string `json:"date"` // "2006-01-02"
	Time             string `json:"time"` // "15:04"
	Location         string `json:"location"`
	Duration         int    `json:"duration"`
	RefereeID        uint   `json:"refereeId"`
	InitiatorNoShow  bool   `json:"initiatorNoShow"`
	ChallengedNoShow bool   `json:"challengedNoShow"`
}

// CreateStudioRequest is the body of POST /studios.
type CreateStudioRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required,min=1"`
	HourlyPrice int    `json:"hourlyPrice" binding:"required,min=0"`
}
