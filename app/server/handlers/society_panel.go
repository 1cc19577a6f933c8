package handlers

import (
	"net/http"
	"time"

	"campus-connect/app/server/authz"
	"campus-connect/app/server/models"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type panelMemberRequest struct {
	UserEmail  string `json:"userEmail"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Batch      string `json:"batch"`
}

// loadSocietyAsAdmin is the shared admin-of-collection guard for the
// society subresources.
func (a *App) loadSocietyAsAdmin(c echo.Context, userEmail string, action string) (*models.Society, error, bool) {
	society, errResp, ok := a.findSocietyByParam(c)
	if !ok {
		return nil, errResp, false
	}

	if !authz.IsSocietyAdmin(society, userEmail) {
		return nil, a.er(c, http.StatusForbidden, "Only admins can "+action), false
	}

	return society, nil, true
}

func (a *App) AddPanelMember(c echo.Context) error {
	var req panelMemberRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid request body")
	}

	society, errResp, ok := a.loadSocietyAsAdmin(c, req.UserEmail, "add panel members")
	if !ok {
		return errResp
	}

	society.PanelMembers = append(society.PanelMembers, models.PanelMember{
		ID:         primitive.NewObjectID(),
		Name:       req.Name,
		Position:   req.Position,
		Department: req.Department,
		Batch:      req.Batch,
	})

	if err := a.saveSociety(c, society); err != nil {
		a.l.Error("failed to save society", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error adding panel member")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Panel member added",
		"society": society,
	})
}

func (a *App) UpdatePanelMember(c echo.Context) error {
	var req panelMemberRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid request body")
	}

	society, errResp, ok := a.loadSocietyAsAdmin(c, req.UserEmail, "update panel members")
	if !ok {
		return errResp
	}

	memberID, err := primitive.ObjectIDFromHex(c.Param("memberId"))
	if err != nil {
		return a.er(c, http.StatusNotFound, "Panel member not found")
	}

	var member *models.PanelMember
	for i := range society.PanelMembers {
		if society.PanelMembers[i].ID == memberID {
			member = &society.PanelMembers[i]
			break
		}
	}
	if member == nil {
		return a.er(c, http.StatusNotFound, "Panel member not found")
	}

	if req.Name != "" {
		member.Name = req.Name
	}
	if req.Position != "" {
		member.Position = req.Position
	}
	if req.Department != "" {
		member.Department = req.Department
	}
	if req.Batch != "" {
		member.Batch = req.Batch
	}

	if err := a.saveSociety(c, society); err != nil {
		a.l.Error("failed to save society", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error updating panel member")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Panel member updated",
		"society": society,
	})
}

func (a *App) DeletePanelMember(c echo.Context) error {
	var req memberActionRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid request body")
	}

	society, errResp, ok := a.loadSocietyAsAdmin(c, req.UserEmail, "delete panel members")
	if !ok {
		return errResp
	}

	memberID, err := primitive.ObjectIDFromHex(c.Param("memberId"))
	if err != nil {
		return a.er(c, http.StatusNotFound, "Panel member not found")
	}

	found := false
	members := society.PanelMembers[:0]
	for _, m := range society.PanelMembers {
		if m.ID == memberID {
			found = true
			continue
		}
		members = append(members, m)
	}
	if !found {
		return a.er(c, http.StatusNotFound, "Panel member not found")
	}
	society.PanelMembers = members

	if err := a.saveSociety(c, society); err != nil {
		a.l.Error("failed to save society", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error deleting panel member")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Panel member deleted",
		"society": society,
	})
}

type pastEventRequest struct {
	UserEmail   string     `json:"userEmail"`
	Title       string     `json:"title"`
	Date        *time.Time `json:"date"`
	Image       string     `json:"image"`
	Description *string    `json:"description"`
}

func (a *App) AddPastEvent(c echo.Context) error {
	var req pastEventRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid request body")
	}

	society, errResp, ok := a.loadSocietyAsAdmin(c, req.UserEmail, "add past events")
	if !ok {
		return errResp
	}

	event := models.PastEvent{
		ID:    primitive.NewObjectID(),
		Title: req.Title,
		Image: req.Image,
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	society.PastGallery = append(society.PastGallery, event)

	if err := a.saveSociety(c, society); err != nil {
		a.l.Error("failed to save society", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error adding past event")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Past event added",
		"society": society,
	})
}

func (a *App) UpdatePastEvent(c echo.Context) error {
	var req pastEventRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid request body")
	}

	society, errResp, ok := a.loadSocietyAsAdmin(c, req.UserEmail, "update past events")
	if !ok {
		return errResp
	}

	eventID, err := primitive.ObjectIDFromHex(c.Param("eventId"))
	if err != nil {
		return a.er(c, http.StatusNotFound, "Past event not found")
	}

	var event *models.PastEvent
	for i := range society.PastGallery {
		if society.PastGallery[i].ID == eventID {
			event = &society.PastGallery[i]
			break
		}
	}
	if event == nil {
		return a.er(c, http.StatusNotFound, "Past event not found")
	}

	if req.Title != "" {
		event.Title = req.Title
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Image != "" {
		event.Image = req.Image
	}
	if req.Description != nil {
		event.Description = *req.Description
	}

	if err := a.saveSociety(c, society); err != nil {
		a.l.Error("failed to save society", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error updating past event")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Past event updated",
		"society": society,
	})
}

func (a *App) DeletePastEvent(c echo.Context) error {
	var req memberActionRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid request body")
	}

	society, errResp, ok := a.loadSocietyAsAdmin(c, req.UserEmail, "delete past events")
	if !ok {
		return errResp
	}

	eventID, err := primitive.ObjectIDFromHex(c.Param("eventId"))
	if err != nil {
		return a.er(c, http.StatusNotFound, "Past event not found")
	}

	found := false
	gallery := society.PastGallery[:0]
	for _, e := range society.PastGallery {
		if e.ID == eventID {
			found = true
			continue
		}
		gallery = append(gallery, e)
	}
	if !found {
		return a.er(c, http.StatusNotFound, "Past event not found")
	}
	society.PastGallery = gallery

	if err := a.saveSociety(c, society); err != nil {
		a.l.Error("failed to save society", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error deleting past event")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Past event deleted",
		"society": society,
	})
}
