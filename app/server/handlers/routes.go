package handlers

import (
	"campus-connect/app/server/middlewares"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes binds the full HTTP surface. Bearer-authenticated
// groups get SessionAuth at group level; the society, event and
// feedback routes carry the caller identity in the request body
// instead.
func (a *App) RegisterRoutes(e *echo.Echo) {
	sessionAuth := middlewares.SessionAuth(&middlewares.GormUserFinder{DB: a.db}, a.jwt, a.l)
	adminOnly := middlewares.RequireAdministrator(a.cfg.Security.AdministratorEmails)

	e.GET("/healthcheck", a.HealthCheck)

	auth := e.Group("/api/auth")
	auth.POST("/verify-domain", a.GoogleSignin)
	auth.GET("/logout", a.Logout)
	auth.GET("/me", a.GetMe, sessionAuth)
	auth.PUT("/update-profile", a.UpdateProfile, sessionAuth)

	administrator := e.Group("/administrator")
	administrator.POST("/login", a.AdministratorSignin)
	administratorOnly := administrator.Group("", sessionAuth, adminOnly)
	administratorOnly.GET("/dashboard", a.Dashboard)
	administratorOnly.GET("/admin-requests", a.ListAdminRequests)
	administratorOnly.POST("/admin-requests/approve", a.ApproveAdminRequest)
	administratorOnly.POST("/admin-requests/reject", a.RejectAdminRequest)
	administratorOnly.GET("/societies", a.ListSocieties)
	administratorOnly.POST("/societies", a.CreateSociety)
	administratorOnly.DELETE("/societies/:id", a.DeleteSociety)
	administratorOnly.POST("/societies/:id/remove-admin", a.RemoveAdminFromSociety)

	societies := e.Group("/api/societies")
	societies.GET("", a.ListSocieties)
	societies.POST("", a.CreateSociety)
	societies.GET("/:id", a.GetSociety)
	societies.PUT("/:id", a.UpdateSociety)
	societies.POST("/:id/follow", a.ToggleFollow)
	societies.POST("/:id/join-admin", a.JoinAsAdmin)
	societies.POST("/:id/leave-admin", a.LeaveAdmin)
	societies.POST("/:id/panel-members", a.AddPanelMember)
	societies.PUT("/:id/panel-members/:memberId", a.UpdatePanelMember)
	societies.DELETE("/:id/panel-members/:memberId", a.DeletePanelMember)
	societies.POST("/:id/past-gallery", a.AddPastEvent)
	societies.PUT("/:id/past-gallery/:eventId", a.UpdatePastEvent)
	societies.DELETE("/:id/past-gallery/:eventId", a.DeletePastEvent)

	events := e.Group("/api/events")
	events.GET("", a.ListEvents)
	events.POST("", a.CreateEvent)
	events.GET("/:id", a.GetEvent)
	events.PUT("/:id", a.UpdateEvent)
	events.DELETE("/:id", a.DeleteEvent)
	events.POST("/:id/register", a.RegisterForEvent)
	events.DELETE("/:id/register", a.UnregisterFromEvent)
	events.POST("/:id/unregister", a.UnregisterFromEvent)

	marketplace := e.Group("/api/marketplace", sessionAuth)
	marketplace.POST("", a.CreatePost)
	marketplace.GET("", a.ListPosts)
	marketplace.GET("/my-posts", a.ListMyPosts)
	marketplace.GET("/:id", a.GetPost)
	marketplace.DELETE("/:id", a.DeletePost)
	marketplace.PUT("/:id/payment-done", a.MarkPaymentDone)
	marketplace.PUT("/:id/confirm-payment", a.ConfirmPayment)

	lostItems := e.Group("/api/lost-items")
	lostItems.POST("/create", a.CreateLostItem, sessionAuth)
	lostItems.GET("/all", a.ListLostItems)
	lostItems.DELETE("/delete/:id", a.DeleteLostItem, sessionAuth)

	donors := e.Group("/api/donors", sessionAuth)
	donors.GET("/getAllDonors", a.ListDonors)
	donors.POST("/register", a.RegisterDonor)
	donors.PUT("/toggleDonorStatus", a.ToggleDonorStatus)
	donors.PUT("/update", a.UpdateDonorInfo)

	feedback := e.Group("/api/feedback")
	feedback.POST("", a.CreateFeedback)
	feedback.GET("", a.ListFeedback)
	feedback.GET("/category/:category", a.ListFeedbackByCategory)
	feedback.GET("/:id", a.GetFeedback)
	feedback.POST("/:id/comments", a.AddComment)
	feedback.DELETE("/:feedbackId/comments/:commentId", a.DeleteComment)
	feedback.POST("/:id/like", a.LikeFeedback)
	feedback.POST("/:id/unlike", a.UnlikeFeedback)
	feedback.POST("/:id/comments/:commentId/like", a.LikeComment)
	feedback.POST("/:id/comments/:commentId/unlike", a.UnlikeComment)
}
