package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	"github.com/GORLEABHILASH/booklovers/internal/http/response"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
	"github.com/GORLEABHILASH/booklovers/internal/services"
)

type ProfileHandler struct {
	log      *logger.Logger
	profiles services.ProfileService
}

func NewProfileHandler(log *logger.Logger, profiles services.ProfileService) *ProfileHandler {
	return &ProfileHandler{log: log.With("handler", "ProfileHandler"), profiles: profiles}
}

// GET /api/me/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	profile, err := h.profiles.Profile(c.Request.Context(), userID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"profile": profile})
}

// PUT /api/me/profile
// body: profile fields; "hobbies" is comma separated, location needs city, state and country.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	var req struct {
		FirstName          string `json:"firstName"`
		LastName           string `json:"lastName"`
		Email              string `json:"email"`
		PhoneNumber        string `json:"phoneNumber"`
		Bio                string `json:"bio"`
		Age                any    `json:"age"`
		RelationshipStatus string `json:"relationshipStatus"`
		Profession         string `json:"profession"`
		Hobbies            string `json:"hobbies"`
		City               string `json:"city"`
		State              string `json:"state"`
		Country            string `json:"country"`
	}
	if !bindJSON(c, &req) {
		return
	}
	// the profile form posts "" for an unset age
	if s, ok := req.Age.(string); ok && s == "" {
		req.Age = nil
	}
	age, ok := optionalInt(c, req.Age, "age")
	if !ok {
		return
	}
	profile, err := h.profiles.UpdateProfile(c.Request.Context(), userID, reading.ProfileUpdate{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		PhoneNumber:        req.PhoneNumber,
		Bio:                req.Bio,
		Age:                age,
		RelationshipStatus: req.RelationshipStatus,
		Profession:         req.Profession,
		Hobbies:            req.Hobbies,
		City:               req.City,
		State:              req.State,
		Country:            req.Country,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"profile": profile})
}

// GET /api/me/preferences
func (h *ProfileHandler) GetPreferences(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	response.RespondOK(c, h.profiles.Preferences(c.Request.Context(), userID))
}

// PUT /api/me/preferences
// body: { "genres": [], "authors": [], "themes": [] }
func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	var req reading.Preferences
	if !bindJSON(c, &req) {
		return
	}
	prefs, err := h.profiles.UpdatePreferences(c.Request.Context(), userID, req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, prefs)
}

// GET /api/me/social
func (h *ProfileHandler) GetSocial(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	response.RespondOK(c, h.profiles.Social(c.Request.Context(), userID))
}

// GET /api/options/profile
func (h *ProfileHandler) ProfileOptions(c *gin.Context) {
	response.RespondOK(c, h.profiles.ProfileOptions(c.Request.Context()))
}

// GET /api/options/reading
func (h *ProfileHandler) ReadingOptions(c *gin.Context) {
	response.RespondOK(c, h.profiles.ReadingOptions(c.Request.Context()))
}

// GET /api/options/locations
func (h *ProfileHandler) Locations(c *gin.Context) {
	response.RespondOK(c, h.profiles.Locations(c.Request.Context()))
}

// GET /api/clubs
func (h *ProfileHandler) AvailableClubs(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	response.RespondOK(c, gin.H{"clubs": h.profiles.AvailableClubs(c.Request.Context(), userID)})
}

// POST /api/clubs/:clubId/members
func (h *ProfileHandler) JoinClub(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	clubID := pathID(c, "clubId", "invalid_club_id")
	if clubID == "" {
		return
	}
	membership, err := h.profiles.JoinClub(c.Request.Context(), userID, clubID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"membership": membership})
}

// DELETE /api/clubs/:clubId/members
func (h *ProfileHandler) LeaveClub(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	clubID := pathID(c, "clubId", "invalid_club_id")
	if clubID == "" {
		return
	}
	if err := h.profiles.LeaveClub(c.Request.Context(), userID, clubID); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"left": clubID})
}
