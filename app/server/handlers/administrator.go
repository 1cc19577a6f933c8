package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"campus-connect/app/server/authz"
	"campus-connect/app/server/constants"
	"campus-connect/app/server/jwt"
	"campus-connect/app/server/models"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func (a *App) isAdministrator(email string) bool {
	for _, allowed := range a.cfg.Security.AdministratorEmails {
		if allowed == email {
			return true
		}
	}
	return false
}

// AdministratorSignin: same pipeline as the regular sign-in plus the
// allowlist check, which must pass before a token is issued. The same
// allowlist is re-checked by the gate middleware on every later call.
func (a *App) AdministratorSignin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.erLegacy(c, http.StatusBadRequest, "Token is missing.", "Token is missing.")
	}

	id, errResp, ok := a.verifySignin(c, &req)
	if !ok {
		return errResp
	}

	if !a.isAdministrator(id.Email) {
		return a.erLegacy(c, http.StatusForbidden, "Access Denied", "You do not have administrator privileges.")
	}

	token, err := a.jwt.SignSession(id.Email)
	if err != nil {
		a.l.Error("failed to sign session token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "There was some Error")
	}

	user, err := a.upsertUser(c, id)
	if err != nil {
		a.l.Error("failed to upsert user", zap.String("email", id.Email), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "There was some Error")
	}

	c.SetCookie(jwt.SessionCookie(token, a.cfg.System.IsProd))

	res := authUserFromModel(user)
	res.Token = token
	res.IsAdministrator = true

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Administrator Login Successful",
		"user":    res,
	})
}

type dashboardCounts struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalSocieties int64 `json:"totalSocieties"`
	TotalEvents    int64 `json:"totalEvents"`
	TotalFeedback  int64 `json:"totalFeedback"`
}

// Dashboard aggregates counts across both stores, with a short-lived
// cache in front. Only the counts are cached; authorization relations
// never are.
func (a *App) Dashboard(c echo.Context) error {
	rctx := c.Request().Context()

	var counts dashboardCounts
	if cacheBytes, err := a.rdb.Get(rctx, constants.CacheKeyDashboardCounts).Bytes(); err != nil {
		if !errors.Is(err, redis.Nil) {
			a.l.Error("failed to query dashboard counts cache", zap.Error(err))
		}
	} else if err = json.Unmarshal(cacheBytes, &counts); err != nil {
		a.l.Error("failed to unmarshal dashboard counts", zap.ByteString("cacheBytes", cacheBytes), zap.Error(err))
		a.rdb.Del(rctx, constants.CacheKeyDashboardCounts)
	} else {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": counts})
	}

	if err := a.db.WithContext(rctx).Model(&models.User{}).Count(&counts.TotalUsers).Error; err != nil {
		a.l.Error("failed to count users", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error fetching dashboard data")
	}

	var err error
	if counts.TotalSocieties, err = a.societies().CountDocuments(rctx, bson.M{}); err != nil {
		a.l.Error("failed to count societies", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error fetching dashboard data")
	}
	if counts.TotalEvents, err = a.events().CountDocuments(rctx, bson.M{}); err != nil {
		a.l.Error("failed to count events", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error fetching dashboard data")
	}
	if counts.TotalFeedback, err = a.feedback().CountDocuments(rctx, bson.M{}); err != nil {
		a.l.Error("failed to count feedback", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error fetching dashboard data")
	}

	if cacheBytes, err := json.Marshal(&counts); err != nil {
		a.l.Error("failed to marshal dashboard counts", zap.Error(err))
	} else {
		a.rdb.Set(rctx, constants.CacheKeyDashboardCounts, cacheBytes, constants.CacheExpireDashboardCounts)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": counts})
}

type adminRequestView struct {
	RequestID   primitive.ObjectID `json:"requestId"`
	SocietyID   primitive.ObjectID `json:"societyId"`
	SocietyName string             `json:"societyName"`
	SocietyLogo string             `json:"societyLogo"`
	UserEmail   string             `json:"userEmail"`
	UserName    string             `json:"userName"`
	RequestedAt time.Time          `json:"requestedAt"`
	Status      string             `json:"status"`
}

// ListAdminRequests flattens the pending admin-join requests of every
// society, newest first.
func (a *App) ListAdminRequests(c echo.Context) error {
	rctx := c.Request().Context()

	cursor, err := a.societies().Find(rctx, bson.M{"adminRequests.status": models.AdminRequestPending})
	if err != nil {
		a.l.Error("failed to find societies with pending requests", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error fetching admin requests")
	}

	var societies []models.Society
	if err := cursor.All(rctx, &societies); err != nil {
		a.l.Error("failed to decode societies", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error fetching admin requests")
	}

	requests := []adminRequestView{}
	for _, society := range societies {
		for _, req := range society.AdminRequests {
			if req.Status != models.AdminRequestPending {
				continue
			}
			requests = append(requests, adminRequestView{
				RequestID:   req.ID,
				SocietyID:   society.ID,
				SocietyName: society.Name,
				SocietyLogo: society.Logo,
				UserEmail:   req.UserEmail,
				UserName:    req.UserName,
				RequestedAt: req.RequestedAt,
				Status:      req.Status,
			})
		}
	}

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].RequestedAt.After(requests[j].RequestedAt)
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": requests})
}

type moderateRequestBody struct {
	SocietyID string `json:"societyId"`
	RequestID string `json:"requestId"`
}

func (a *App) loadModerationTarget(c echo.Context, req *moderateRequestBody) (*models.Society, primitive.ObjectID, error, bool) {
	rctx := c.Request().Context()

	if req.SocietyID == "" || req.RequestID == "" {
		return nil, primitive.NilObjectID, a.er(c, http.StatusBadRequest, "Society ID and Request ID are required"), false
	}

	societyID, err := primitive.ObjectIDFromHex(req.SocietyID)
	if err != nil {
		return nil, primitive.NilObjectID, a.er(c, http.StatusNotFound, "Society not found"), false
	}
	requestID, err := primitive.ObjectIDFromHex(req.RequestID)
	if err != nil {
		return nil, primitive.NilObjectID, a.er(c, http.StatusNotFound, "Admin request not found"), false
	}

	var society models.Society
	if err := a.societies().FindOne(rctx, bson.M{"_id": societyID}).Decode(&society); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, primitive.NilObjectID, a.er(c, http.StatusNotFound, "Society not found"), false
		}
		a.l.Error("failed to find society", zap.String("id", req.SocietyID), zap.Error(err))
		return nil, primitive.NilObjectID, a.er(c, http.StatusInternalServerError, "Error processing admin request"), false
	}

	return &society, requestID, nil, true
}

func (a *App) ApproveAdminRequest(c echo.Context) error {
	var req moderateRequestBody
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Society ID and Request ID are required")
	}

	society, requestID, errResp, ok := a.loadModerationTarget(c, &req)
	if !ok {
		return errResp
	}

	approved, err := authz.ApproveAdminRequest(society, requestID)
	switch {
	case errors.Is(err, authz.ErrNotFound):
		return a.er(c, http.StatusNotFound, "Admin request not found")
	case errors.Is(err, authz.ErrAlreadyProcessed):
		return a.er(c, http.StatusBadRequest, "This request has already been processed")
	case err != nil:
		a.l.Error("failed to approve admin request", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error approving admin request")
	}

	if err := a.saveSociety(c, society); err != nil {
		a.l.Error("failed to save society", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error approving admin request")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": approved.UserName + " has been approved as an admin for " + society.Name,
	})
}

func (a *App) RejectAdminRequest(c echo.Context) error {
	var req moderateRequestBody
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Society ID and Request ID are required")
	}

	society, requestID, errResp, ok := a.loadModerationTarget(c, &req)
	if !ok {
		return errResp
	}

	rejected, err := authz.RejectAdminRequest(society, requestID)
	switch {
	case errors.Is(err, authz.ErrNotFound):
		return a.er(c, http.StatusNotFound, "Admin request not found")
	case errors.Is(err, authz.ErrAlreadyProcessed):
		return a.er(c, http.StatusBadRequest, "This request has already been processed")
	case err != nil:
		a.l.Error("failed to reject admin request", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error rejecting admin request")
	}

	if err := a.saveSociety(c, society); err != nil {
		a.l.Error("failed to save society", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error rejecting admin request")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Request from " + rejected.UserName + " has been rejected",
	})
}

// DeleteSociety is administrator-layer moderation; society admins
// cannot delete their own society.
func (a *App) DeleteSociety(c echo.Context) error {
	rctx := c.Request().Context()

	societyID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return a.er(c, http.StatusNotFound, "Society not found")
	}

	res, err := a.societies().DeleteOne(rctx, bson.M{"_id": societyID})
	if err != nil {
		a.l.Error("failed to delete society", zap.String("id", c.Param("id")), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error deleting society")
	}
	if res.DeletedCount == 0 {
		return a.er(c, http.StatusNotFound, "Society not found")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Society deleted successfully",
	})
}

type removeAdminBody struct {
	AdminEmail string `json:"adminEmail"`
}

func (a *App) RemoveAdminFromSociety(c echo.Context) error {
	var req removeAdminBody
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Admin email is required")
	}
	if req.AdminEmail == "" {
		return a.er(c, http.StatusBadRequest, "Admin email is required")
	}

	society, errResp, ok := a.findSocietyByParam(c)
	if !ok {
		return errResp
	}

	if err := authz.RemoveAdmin(society, req.AdminEmail); err != nil {
		return a.er(c, http.StatusNotFound, "Admin not found in this society")
	}

	if err := a.saveSociety(c, society); err != nil {
		a.l.Error("failed to save society", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error removing admin")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": req.AdminEmail + " has been removed as an admin of " + society.Name,
	})
}
