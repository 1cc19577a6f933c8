package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"campus-connect/app/server/authz"
	"campus-connect/app/server/middlewares"
	"campus-connect/app/server/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type createLostItemRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	Location    string     `json:"location"`
	PhoneNumber string     `json:"phone_number"`
	Image       string     `json:"image"`
}

// CreateLostItem reports a found item. The reporter comes from the
// session; a missing loss date defaults to now.
func (a *App) CreateLostItem(c echo.Context) error {
	session, ok := middlewares.SessionFrom(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized, "Authentication required.")
	}

	var req createLostItemRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" || req.Description == "" || req.Location == "" {
		return a.er(c, http.StatusBadRequest, "Name, description and location are required")
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	item := models.LostItem{
		Name:        req.Name,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		PhoneNumber: req.PhoneNumber,
		Image:       req.Image,
		OwnerID:     session.UserID,
	}

	if err := a.db.WithContext(c.Request().Context()).Create(&item).Error; err != nil {
		a.l.Error("failed to create lost item", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Lost item reported successfully",
		"item":    item,
	})
}

func (a *App) ListLostItems(c echo.Context) error {
	rctx := c.Request().Context()

	var items []models.LostItem
	if err := a.db.WithContext(rctx).
		Preload("Owner").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		a.l.Error("failed to list lost items", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Could not fetch items")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"items":   items,
	})
}

func (a *App) DeleteLostItem(c echo.Context) error {
	session, ok := middlewares.SessionFrom(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized, "Authentication required.")
	}

	rctx := c.Request().Context()

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return a.er(c, http.StatusNotFound, "Item not found")
	}

	var item models.LostItem
	if err := a.db.WithContext(rctx).First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound, "Item not found")
		}
		a.l.Error("failed to get lost item", zap.Uint64("id", itemID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Internal server error")
	}

	if !authz.CanDeleteLostItem(&item, session.UserID) {
		return a.er(c, http.StatusForbidden, "Unauthorized: You can only delete your own items")
	}

	if err := a.db.WithContext(rctx).Delete(&item).Error; err != nil {
		a.l.Error("failed to delete lost item", zap.Uint("id", item.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Item deleted successfully from the database",
	})
}
