package handlers

import (
	"errors"
	"net/http"
	"time"

	"campus-connect/app/server/authz"
	"campus-connect/app/server/middlewares"
	"campus-connect/app/server/models"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func (a *App) findPostByParam(c echo.Context) (*models.MarketplacePost, error, bool) {
	rctx := c.Request().Context()

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return nil, a.er(c, http.StatusNotFound, "Post not found"), false
	}

	var post models.MarketplacePost
	if err := a.marketplace().FindOne(rctx, bson.M{"_id": postID}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, a.er(c, http.StatusNotFound, "Post not found"), false
		}
		a.l.Error("failed to find marketplace post", zap.String("id", c.Param("id")), zap.Error(err))
		return nil, a.er(c, http.StatusInternalServerError, "Server error fetching post"), false
	}

	return &post, nil, true
}

type createPostRequest struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Location    string   `json:"location"`
	Price       *float64 `json:"price"`
	PhoneNumber string   `json:"phone_number"`
}

// CreatePost lists an item for sale. The seller identity comes from the
// session, never from the body.
func (a *App) CreatePost(c echo.Context) error {
	session, ok := middlewares.SessionFrom(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized, "Authentication required.")
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Title == "" || req.Category == "" || req.Description == "" || req.Location == "" || req.Price == nil || req.PhoneNumber == "" {
		return a.er(c, http.StatusBadRequest, "Please provide all required fields")
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}

	now := time.Now()
	post := models.MarketplacePost{
		ID:            primitive.NewObjectID(),
		SellerID:      session.UserID,
		SellerName:    session.Email,
		Title:         req.Title,
		Category:      req.Category,
		Description:   req.Description,
		Images:        images,
		Location:      req.Location,
		Price:         *req.Price,
		PhoneNumber:   req.PhoneNumber,
		PaymentStatus: models.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := a.marketplace().InsertOne(c.Request().Context(), &post); err != nil {
		a.l.Error("failed to insert marketplace post", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Server error creating post")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"post":    post,
	})
}

// ListPosts shows active (payment-pending) listings only, newest first,
// with optional category and title-search filters.
func (a *App) ListPosts(c echo.Context) error {
	rctx := c.Request().Context()

	filter := bson.M{"paymentStatus": models.PaymentPending}

	if category := c.QueryParam("category"); category != "" {
		filter["category"] = category
	}
	if search := c.QueryParam("search"); search != "" {
		filter["title"] = bson.M{"$regex": search, "$options": "i"}
	}

	cursor, err := a.marketplace().Find(rctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		a.l.Error("failed to find marketplace posts", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Server error fetching posts")
	}

	posts := []models.MarketplacePost{}
	if err := cursor.All(rctx, &posts); err != nil {
		a.l.Error("failed to decode marketplace posts", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Server error fetching posts")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"posts":   posts,
	})
}

// ListMyPosts returns the caller's own listings regardless of payment
// state.
func (a *App) ListMyPosts(c echo.Context) error {
	session, ok := middlewares.SessionFrom(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized, "Authentication required.")
	}

	rctx := c.Request().Context()

	cursor, err := a.marketplace().Find(rctx,
		bson.M{"sellerId": session.UserID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		a.l.Error("failed to find own marketplace posts", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Server error fetching your posts")
	}

	posts := []models.MarketplacePost{}
	if err := cursor.All(rctx, &posts); err != nil {
		a.l.Error("failed to decode marketplace posts", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Server error fetching your posts")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"posts":   posts,
	})
}

func (a *App) GetPost(c echo.Context) error {
	post, errResp, ok := a.findPostByParam(c)
	if !ok {
		return errResp
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"post":    post,
	})
}

func (a *App) DeletePost(c echo.Context) error {
	session, ok := middlewares.SessionFrom(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized, "Authentication required.")
	}

	post, errResp, ok := a.findPostByParam(c)
	if !ok {
		return errResp
	}

	if !authz.CanDeletePost(post, session.UserID) {
		return a.er(c, http.StatusForbidden, "Not authorized to delete this post")
	}

	if _, err := a.marketplace().DeleteOne(c.Request().Context(), bson.M{"_id": post.ID}); err != nil {
		a.l.Error("failed to delete marketplace post", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Server error deleting post")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Post removed",
	})
}

// MarkPaymentDone is the buyer's half of the payment handshake.
func (a *App) MarkPaymentDone(c echo.Context) error {
	session, ok := middlewares.SessionFrom(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized, "Authentication required.")
	}

	post, errResp, ok := a.findPostByParam(c)
	if !ok {
		return errResp
	}

	if err := authz.MarkPaymentDone(post, session.UserID, session.Email); err != nil {
		if errors.Is(err, authz.ErrSelfPurchase) {
			return a.er(c, http.StatusBadRequest, "You cannot buy your own item")
		}
		a.l.Error("failed to mark payment done", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Server error updating payment status")
	}

	post.UpdatedAt = time.Now()
	if _, err := a.marketplace().ReplaceOne(c.Request().Context(), bson.M{"_id": post.ID}, post); err != nil {
		a.l.Error("failed to save marketplace post", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Server error updating payment status")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"post":    post,
	})
}

// ConfirmPayment is the seller's half; on success the sold listing is
// removed entirely.
func (a *App) ConfirmPayment(c echo.Context) error {
	session, ok := middlewares.SessionFrom(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized, "Authentication required.")
	}

	post, errResp, ok := a.findPostByParam(c)
	if !ok {
		return errResp
	}

	err := authz.ConfirmPayment(post, session.UserID)
	switch {
	case errors.Is(err, authz.ErrForbidden):
		return a.er(c, http.StatusForbidden, "Not authorized to confirm payment for this post")
	case errors.Is(err, authz.ErrPaymentNotMarked):
		return a.er(c, http.StatusBadRequest, "Payment must be marked as done by buyer first")
	case err != nil:
		a.l.Error("failed to confirm payment", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Server error confirming payment")
	}

	if _, err := a.marketplace().DeleteOne(c.Request().Context(), bson.M{"_id": post.ID}); err != nil {
		a.l.Error("failed to delete sold post", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Server error confirming payment")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Payment confirmed and post removed",
	})
}
