package api

import (
	"net/http"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	"launchops/internal/monitoring"
	"launchops/internal/recon"
	"launchops/internal/store"
)

// Server is the dashboard's HTTP surface: record CRUD glue around the
// reconciliation engine plus the live event feed.
type Server struct {
	Router  *gin.Engine
	store   store.Store
	engine  *recon.Engine
	monitor *monitoring.Monitor
	hub     *Hub
	secret  string
}

// NewServer wires the router. An empty secret disables the auth middleware.
func NewServer(s store.Store, engine *recon.Engine, monitor *monitoring.Monitor, hub *Hub, secret string) *Server {
	srv := &Server{
		Router:  gin.Default(),
		store:   s,
		engine:  engine,
		monitor: monitor,
		hub:     hub,
		secret:  secret,
	}
	srv.setupRoutes()
	return srv
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.Router.GET("/ws", s.hub.Handle)

	v1 := s.Router.Group("/api/v1")
	if s.secret != "" {
		v1.Use(AuthMiddleware(s.secret))
	}
	{
		// Inventory
		v1.GET("/inventory", s.ListInventory)
		v1.POST("/inventory", s.CreateInventoryItem)
		v1.PUT("/inventory/:id", s.UpdateInventoryItem)
		v1.GET("/inventory/low-stock", s.ListLowStock)

		// Purchase requests
		v1.GET("/requests", s.ListRequests)
		v1.POST("/requests", s.CreateRequest)
		v1.POST("/requests/:id/transition", s.TransitionRequest)
		v1.POST("/requests/:id/move-to-pending", s.MoveRequestToPending)

		// Bill of materials
		v1.POST("/bom/shortfall", s.BOMShortfall)
		v1.POST("/bom/allocate", s.BOMAllocate)

		// Purchase lists
		v1.GET("/lists", s.ListPurchaseLists)
		v1.POST("/lists", s.CreatePurchaseList)
		v1.PUT("/lists/:id", s.UpdatePurchaseList)

		// Directories (read-only here)
		v1.GET("/vendors", s.ListVendors)
		v1.GET("/users", s.ListUsers)

		// Engine
		v1.POST("/sync", s.TriggerSync)
		v1.GET("/metrics", s.MetricsSnapshot)
	}
}

// AuthMiddleware verifies bearer tokens signed with the shared secret.
// Token issuance lives in the auth service, not here.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// TriggerSync runs a fullSync outside the normal timer cadence.
func (s *Server) TriggerSync(c *gin.Context) {
	s.engine.FullSync()
	c.JSON(http.StatusOK, gin.H{"status": "synced"})
}

// MetricsSnapshot returns the monitor's counters for the dashboard.
func (s *Server) MetricsSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, s.monitor.Snapshot())
}
