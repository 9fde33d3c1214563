package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes wires bonus rule endpoints
func (h *BonusRuleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rules := rg.Group("/bonus-rules")
	rules.POST("", h.Create)
	rules.GET("", h.List)
	rules.GET("/:id", h.Get)
	rules.PUT("/:id", h.Update)
	rules.PATCH("/:id/active", h.SetActive)
	rules.DELETE("/:id", h.Delete)
}

// RegisterRoutes wires bonus record endpoints
func (h *BonusRecordHandler) RegisterRoutes(rg *gin.RouterGroup) {
	records := rg.Group("/bonus-records")
	records.GET("", h.List)
	records.GET("/:id", h.Get)
	records.POST("/approve", h.Approve)
	records.POST("/pay", h.Pay)
	records.POST("/reject", h.Reject)
	records.POST("/evaluate-targets", h.EvaluateTargets)
}

// RegisterRoutes wires purchase endpoints
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/purchases")
	purchases.POST("", h.Create)
	purchases.GET("", h.List)
	purchases.GET("/:id", h.Get)
	purchases.POST("/:id/default", h.MarkDefaulted)
}

// RegisterRoutes wires payment endpoints
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	if h.guard != nil {
		payments.POST("", h.guard, h.Record)
	} else {
		payments.POST("", h.Record)
	}
	payments.GET("", h.List)
	payments.GET("/:id", h.Get)
	payments.POST("/:id/confirm", h.Confirm)
	payments.POST("/:id/void", h.Void)
}

// RegisterRoutes wires customer endpoints
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	customers.POST("", h.Create)
	customers.GET("", h.List)
	customers.GET("/:id", h.Get)
	customers.PUT("/:id", h.Update)
}

// RegisterRoutes wires staff endpoints
func (h *StaffHandler) RegisterRoutes(rg *gin.RouterGroup) {
	staff := rg.Group("/staff")
	staff.POST("", h.Create)
	staff.GET("", h.List)
	staff.GET("/:id", h.Get)
	staff.PUT("/:id", h.Update)
	staff.PATCH("/:id/active", h.SetActive)
}

// RegisterRoutes wires shop endpoints
func (h *ShopHandler) RegisterRoutes(rg *gin.RouterGroup) {
	shops := rg.Group("/shops")
	shops.POST("", h.Create)
	shops.GET("", h.List)
	shops.GET("/:id", h.Get)
}

// RegisterRoutes wires session endpoints
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/logout", h.Logout)
}

// RegisterRoutes wires the versioned health endpoint
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}
