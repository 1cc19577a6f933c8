package handlers

import (
	"errors"
	"net/http"
	"time"

	"campus-connect/app/server/authz"
	"campus-connect/app/server/models"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type eventView struct {
	models.Event
	CurrentParticipants int  `json:"currentParticipants"`
	IsRegistered        bool `json:"isRegistered"`
}

func newEventView(e *models.Event, userEmail string) eventView {
	v := eventView{
		Event:               *e,
		CurrentParticipants: len(e.Registrations),
	}
	if userEmail != "" {
		v.IsRegistered = authz.IsRegistered(e, userEmail)
	}
	return v
}

func (a *App) findEventByParam(c echo.Context) (*models.Event, error, bool) {
	rctx := c.Request().Context()

	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return nil, a.er(c, http.StatusNotFound, "Event not found"), false
	}

	var event models.Event
	if err := a.events().FindOne(rctx, bson.M{"_id": eventID}).Decode(&event); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, a.er(c, http.StatusNotFound, "Event not found"), false
		}
		a.l.Error("failed to find event", zap.String("id", c.Param("id")), zap.Error(err))
		return nil, a.er(c, http.StatusInternalServerError, "Error fetching event"), false
	}

	return &event, nil, true
}

func (a *App) saveEvent(c echo.Context, e *models.Event) error {
	e.UpdatedAt = time.Now()
	_, err := a.events().ReplaceOne(c.Request().Context(), bson.M{"_id": e.ID}, e)
	return err
}

// ListEvents supports the calendar filters: society, category, month
// (YYYY-MM) and upcoming-only. Results are sorted by date ascending.
func (a *App) ListEvents(c echo.Context) error {
	rctx := c.Request().Context()

	filter := bson.M{}

	if societyID := c.QueryParam("societyId"); societyID != "" {
		oid, err := primitive.ObjectIDFromHex(societyID)
		if err != nil {
			return a.er(c, http.StatusBadRequest, "Invalid society id")
		}
		filter["societyId"] = oid
	}

	if category := c.QueryParam("category"); category != "" {
		filter["category"] = category
	}

	if month := c.QueryParam("month"); month != "" {
		start, err := time.Parse("2006-01", month)
		if err != nil {
			return a.er(c, http.StatusBadRequest, "Invalid month, expected YYYY-MM")
		}
		filter["date"] = bson.M{
			"$gte": start,
			"$lt":  start.AddDate(0, 1, 0),
		}
	}

	if c.QueryParam("upcoming") == "true" {
		filter["date"] = bson.M{"$gte": time.Now()}
	}

	cursor, err := a.events().Find(rctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		a.l.Error("failed to find events", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error fetching events")
	}

	var events []models.Event
	if err := cursor.All(rctx, &events); err != nil {
		a.l.Error("failed to decode events", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error fetching events")
	}

	userEmail := c.QueryParam("userEmail")
	views := []eventView{}
	for i := range events {
		views = append(views, newEventView(&events[i], userEmail))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"events":  views,
	})
}

func (a *App) GetEvent(c echo.Context) error {
	event, errResp, ok := a.findEventByParam(c)
	if !ok {
		return errResp
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"event":   newEventView(event, c.QueryParam("userEmail")),
	})
}

type createEventRequest struct {
	UserEmail            string    `json:"userEmail"`
	Title                string    `json:"title"`
	SocietyID            string    `json:"societyId"`
	Category             string    `json:"category"`
	Date                 time.Time `json:"date"`
	Time                 string    `json:"time"`
	Venue                string    `json:"venue"`
	Description          string    `json:"description"`
	ImageURL             string    `json:"imageUrl"`
	MaxParticipants      int       `json:"maxParticipants"`
	RegistrationDeadline time.Time `json:"registrationDeadline"`
}

// CreateEvent checks the caller is an admin of the owning society before
// inserting; the society name is denormalized onto the event at this
// point.
func (a *App) CreateEvent(c echo.Context) error {
	rctx := c.Request().Context()

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.UserEmail == "" {
		return a.er(c, http.StatusBadRequest, "User email is required")
	}

	societyID, err := primitive.ObjectIDFromHex(req.SocietyID)
	if err != nil {
		return a.er(c, http.StatusNotFound, "Society not found")
	}

	var society models.Society
	if err := a.societies().FindOne(rctx, bson.M{"_id": societyID}).Decode(&society); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return a.er(c, http.StatusNotFound, "Society not found")
		}
		a.l.Error("failed to find society", zap.String("id", req.SocietyID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error creating event")
	}

	if !authz.IsSocietyAdmin(&society, req.UserEmail) {
		return a.er(c, http.StatusForbidden, "Only admins can create events for this society")
	}

	now := time.Now()
	event := models.Event{
		ID:                   primitive.NewObjectID(),
		Title:                req.Title,
		SocietyID:            society.ID,
		SocietyName:          society.Name,
		Category:             req.Category,
		Date:                 req.Date,
		Time:                 req.Time,
		Venue:                req.Venue,
		Description:          req.Description,
		ImageURL:             req.ImageURL,
		MaxParticipants:      req.MaxParticipants,
		RegistrationDeadline: req.RegistrationDeadline,
		Registrations:        []string{},
		CreatedBy:            req.UserEmail,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if _, err := a.events().InsertOne(rctx, &event); err != nil {
		a.l.Error("failed to insert event", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error creating event")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Event created successfully",
		"event":   newEventView(&event, ""),
	})
}

type updateEventRequest struct {
	Title                string     `json:"title"`
	Category             string     `json:"category"`
	Date                 *time.Time `json:"date"`
	Time                 string     `json:"time"`
	Venue                string     `json:"venue"`
	Description          string     `json:"description"`
	ImageURL             string     `json:"imageUrl"`
	MaxParticipants      int        `json:"maxParticipants"`
	RegistrationDeadline *time.Time `json:"registrationDeadline"`
}

// UpdateEvent edits the descriptive fields only; the registration list,
// the owning society and the creator are never writable here.
func (a *App) UpdateEvent(c echo.Context) error {
	var req updateEventRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid request body")
	}

	event, errResp, ok := a.findEventByParam(c)
	if !ok {
		return errResp
	}

	if req.Title != "" {
		event.Title = req.Title
	}
	if req.Category != "" {
		event.Category = req.Category
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Time != "" {
		event.Time = req.Time
	}
	if req.Venue != "" {
		event.Venue = req.Venue
	}
	if req.Description != "" {
		event.Description = req.Description
	}
	if req.ImageURL != "" {
		event.ImageURL = req.ImageURL
	}
	if req.MaxParticipants != 0 {
		event.MaxParticipants = req.MaxParticipants
	}
	if req.RegistrationDeadline != nil {
		event.RegistrationDeadline = *req.RegistrationDeadline
	}

	if err := a.saveEvent(c, event); err != nil {
		a.l.Error("failed to save event", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error updating event")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Event updated successfully",
		"event":   event,
	})
}

func (a *App) DeleteEvent(c echo.Context) error {
	rctx := c.Request().Context()

	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return a.er(c, http.StatusNotFound, "Event not found")
	}

	res, err := a.events().DeleteOne(rctx, bson.M{"_id": eventID})
	if err != nil {
		a.l.Error("failed to delete event", zap.String("id", c.Param("id")), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error deleting event")
	}
	if res.DeletedCount == 0 {
		return a.er(c, http.StatusNotFound, "Event not found")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Event deleted successfully",
	})
}

func (a *App) RegisterForEvent(c echo.Context) error {
	var req memberActionRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "User email is required")
	}
	if req.UserEmail == "" {
		return a.er(c, http.StatusBadRequest, "User email is required")
	}

	event, errResp, ok := a.findEventByParam(c)
	if !ok {
		return errResp
	}

	err := authz.RegisterForEvent(event, req.UserEmail, time.Now())
	switch {
	case errors.Is(err, authz.ErrAlreadyJoined):
		return a.er(c, http.StatusBadRequest, "You are already registered for this event")
	case errors.Is(err, authz.ErrEventFull):
		return a.er(c, http.StatusBadRequest, "Event is fully booked")
	case errors.Is(err, authz.ErrDeadlinePassed):
		return a.er(c, http.StatusBadRequest, "Registration deadline has passed")
	case err != nil:
		a.l.Error("failed to register for event", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error registering for event")
	}

	if err := a.saveEvent(c, event); err != nil {
		a.l.Error("failed to save event", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error registering for event")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Successfully registered for event",
	})
}

func (a *App) UnregisterFromEvent(c echo.Context) error {
	var req memberActionRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "User email is required")
	}
	if req.UserEmail == "" {
		return a.er(c, http.StatusBadRequest, "User email is required")
	}

	event, errResp, ok := a.findEventByParam(c)
	if !ok {
		return errResp
	}

	authz.UnregisterFromEvent(event, req.UserEmail)

	if err := a.saveEvent(c, event); err != nil {
		a.l.Error("failed to save event", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error unregistering from event")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Successfully unregistered from event",
	})
}
