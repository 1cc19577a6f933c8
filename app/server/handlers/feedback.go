package handlers

import (
	"errors"
	"net/http"
	"strings"
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

// The feedback board predates the rest of the API and keeps its bare
// response shapes: documents are returned unwrapped and errors are
// {message} only.

func (a *App) erFeedback(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, echo.Map{"message": message})
}

func (a *App) findFeedback(c echo.Context, hexID string) (*models.Feedback, error, bool) {
	rctx := c.Request().Context()

	feedbackID, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, a.erFeedback(c, http.StatusNotFound, "Feedback not found"), false
	}

	var feedback models.Feedback
	if err := a.feedback().FindOne(rctx, bson.M{"_id": feedbackID}).Decode(&feedback); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, a.erFeedback(c, http.StatusNotFound, "Feedback not found"), false
		}
		a.l.Error("failed to find feedback", zap.String("id", hexID), zap.Error(err))
		return nil, a.erFeedback(c, http.StatusInternalServerError, "Server Error"), false
	}

	return &feedback, nil, true
}

func (a *App) saveFeedback(c echo.Context, f *models.Feedback) error {
	f.UpdatedAt = time.Now()
	_, err := a.feedback().ReplaceOne(c.Request().Context(), bson.M{"_id": f.ID}, f)
	return err
}

type createFeedbackRequest struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

func (a *App) CreateFeedback(c echo.Context) error {
	var req createFeedbackRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.erFeedback(c, http.StatusBadRequest, "Invalid request body")
	}

	if req.Category == "" {
		return a.erFeedback(c, http.StatusBadRequest, "Category is required")
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return a.erFeedback(c, http.StatusBadRequest, "Message is required")
	}
	if len(req.Message) < 5 {
		return a.erFeedback(c, http.StatusBadRequest, "Message must be at least 5 characters long")
	}

	now := time.Now()
	feedback := models.Feedback{
		ID:        primitive.NewObjectID(),
		Category:  req.Category,
		Title:     strings.TrimSpace(req.Title),
		Message:   req.Message,
		Likes:     []string{},
		Comments:  []models.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := a.feedback().InsertOne(c.Request().Context(), &feedback); err != nil {
		a.l.Error("failed to insert feedback", zap.Error(err))
		return a.erFeedback(c, http.StatusInternalServerError, "Server Error")
	}

	return c.JSON(http.StatusCreated, feedback)
}

func (a *App) listFeedback(c echo.Context, filter bson.M) error {
	rctx := c.Request().Context()

	cursor, err := a.feedback().Find(rctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		a.l.Error("failed to find feedback", zap.Error(err))
		return a.erFeedback(c, http.StatusInternalServerError, "Server Error")
	}

	feedbacks := []models.Feedback{}
	if err := cursor.All(rctx, &feedbacks); err != nil {
		a.l.Error("failed to decode feedback", zap.Error(err))
		return a.erFeedback(c, http.StatusInternalServerError, "Server Error")
	}

	return c.JSON(http.StatusOK, feedbacks)
}

func (a *App) ListFeedback(c echo.Context) error {
	return a.listFeedback(c, bson.M{})
}

func (a *App) ListFeedbackByCategory(c echo.Context) error {
	return a.listFeedback(c, bson.M{"category": c.Param("category")})
}

func (a *App) GetFeedback(c echo.Context) error {
	feedback, errResp, ok := a.findFeedback(c, c.Param("id"))
	if !ok {
		return errResp
	}
	return c.JSON(http.StatusOK, feedback)
}

type addCommentRequest struct {
	Author  string `json:"author"`
	Message string `json:"message"`
}

func (a *App) AddComment(c echo.Context) error {
	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.erFeedback(c, http.StatusBadRequest, "Invalid request body")
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return a.erFeedback(c, http.StatusBadRequest, "Comment message is required")
	}
	if len(req.Message) > 500 {
		return a.erFeedback(c, http.StatusBadRequest, "Comment must be between 1 and 500 characters")
	}
	author := strings.TrimSpace(req.Author)
	if len(author) > 50 {
		return a.erFeedback(c, http.StatusBadRequest, "Author name must not exceed 50 characters")
	}
	if author == "" {
		author = "Anonymous"
	}

	feedback, errResp, ok := a.findFeedback(c, c.Param("id"))
	if !ok {
		return errResp
	}

	feedback.Comments = append(feedback.Comments, models.Comment{
		ID:        primitive.NewObjectID(),
		Author:    author,
		Message:   req.Message,
		Likes:     []string{},
		CreatedAt: time.Now(),
	})

	if err := a.saveFeedback(c, feedback); err != nil {
		a.l.Error("failed to save feedback", zap.Error(err))
		return a.erFeedback(c, http.StatusInternalServerError, "Server Error")
	}

	return c.JSON(http.StatusCreated, feedback)
}

func (a *App) DeleteComment(c echo.Context) error {
	feedback, errResp, ok := a.findFeedback(c, c.Param("feedbackId"))
	if !ok {
		return errResp
	}

	commentID, err := primitive.ObjectIDFromHex(c.Param("commentId"))
	if err != nil {
		return a.erFeedback(c, http.StatusNotFound, "Comment not found")
	}

	found := false
	comments := feedback.Comments[:0]
	for _, comment := range feedback.Comments {
		if comment.ID == commentID {
			found = true
			continue
		}
		comments = append(comments, comment)
	}
	if !found {
		return a.erFeedback(c, http.StatusNotFound, "Comment not found")
	}
	feedback.Comments = comments

	if err := a.saveFeedback(c, feedback); err != nil {
		a.l.Error("failed to save feedback", zap.Error(err))
		return a.erFeedback(c, http.StatusInternalServerError, "Server Error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Comment deleted successfully",
		"feedback": feedback,
	})
}

type likeRequest struct {
	UserID string `json:"userId"` // anonymous client-side identifier
}

func (a *App) bindLikeRequest(c echo.Context) (string, error, bool) {
	var req likeRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return "", a.erFeedback(c, http.StatusBadRequest, "User id is required"), false
	}
	if req.UserID == "" {
		return "", a.erFeedback(c, http.StatusBadRequest, "User id is required"), false
	}
	return req.UserID, nil, true
}

func (a *App) LikeFeedback(c echo.Context) error {
	userID, errResp, ok := a.bindLikeRequest(c)
	if !ok {
		return errResp
	}

	feedback, errResp, ok := a.findFeedback(c, c.Param("id"))
	if !ok {
		return errResp
	}

	if err := authz.Like(&feedback.Likes, userID); err != nil {
		return a.erFeedback(c, http.StatusBadRequest, "Already liked")
	}

	if err := a.saveFeedback(c, feedback); err != nil {
		a.l.Error("failed to save feedback", zap.Error(err))
		return a.erFeedback(c, http.StatusInternalServerError, "Server Error")
	}

	return c.JSON(http.StatusOK, feedback)
}

func (a *App) UnlikeFeedback(c echo.Context) error {
	userID, errResp, ok := a.bindLikeRequest(c)
	if !ok {
		return errResp
	}

	feedback, errResp, ok := a.findFeedback(c, c.Param("id"))
	if !ok {
		return errResp
	}

	authz.Unlike(&feedback.Likes, userID)

	if err := a.saveFeedback(c, feedback); err != nil {
		a.l.Error("failed to save feedback", zap.Error(err))
		return a.erFeedback(c, http.StatusInternalServerError, "Server Error")
	}

	return c.JSON(http.StatusOK, feedback)
}

func (a *App) findComment(c echo.Context, feedback *models.Feedback) (*models.Comment, error, bool) {
	commentID, err := primitive.ObjectIDFromHex(c.Param("commentId"))
	if err != nil {
		return nil, a.erFeedback(c, http.StatusNotFound, "Comment not found"), false
	}

	for i := range feedback.Comments {
		if feedback.Comments[i].ID == commentID {
			return &feedback.Comments[i], nil, true
		}
	}
	return nil, a.erFeedback(c, http.StatusNotFound, "Comment not found"), false
}

func (a *App) LikeComment(c echo.Context) error {
	userID, errResp, ok := a.bindLikeRequest(c)
	if !ok {
		return errResp
	}

	feedback, errResp, ok := a.findFeedback(c, c.Param("id"))
	if !ok {
		return errResp
	}

	comment, errResp, ok := a.findComment(c, feedback)
	if !ok {
		return errResp
	}

	if err := authz.Like(&comment.Likes, userID); err != nil {
		return a.erFeedback(c, http.StatusBadRequest, "Already liked")
	}

	if err := a.saveFeedback(c, feedback); err != nil {
		a.l.Error("failed to save feedback", zap.Error(err))
		return a.erFeedback(c, http.StatusInternalServerError, "Server Error")
	}

	return c.JSON(http.StatusOK, feedback)
}

func (a *App) UnlikeComment(c echo.Context) error {
	userID, errResp, ok := a.bindLikeRequest(c)
	if !ok {
		return errResp
	}

	feedback, errResp, ok := a.findFeedback(c, c.Param("id"))
	if !ok {
		return errResp
	}

	comment, errResp, ok := a.findComment(c, feedback)
	if !ok {
		return errResp
	}

	authz.Unlike(&comment.Likes, userID)

	if err := a.saveFeedback(c, feedback); err != nil {
		a.l.Error("failed to save feedback", zap.Error(err))
		return a.erFeedback(c, http.StatusInternalServerError, "Server Error")
	}

	return c.JSON(http.StatusOK, feedback)
}
