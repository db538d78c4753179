package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"launchops/internal/models"
	"launchops/internal/store"
)

// ListRequests returns the purchase request collection, optionally filtered
// by ?status=.
func (s *Server) ListRequests(c *gin.Context) {
	requests, err := store.Collection[models.PurchaseRequest](s.store, store.KeyPurchaseRequests)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if status := c.Query("status"); status != "" {
		filtered := []models.PurchaseRequest{}
		for _, r := range requests {
			if r.Status == models.RequestStatus(status) {
				filtered = append(filtered, r)
			}
		}
		requests = filtered
	}
	c.JSON(http.StatusOK, requests)
}

// CreateRequest persists a new pending purchase request.
func (s *Server) CreateRequest(c *gin.Context) {
	var req models.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ItemName == "" || req.Vendor == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "itemName and vendor are required"})
		return
	}

	req.ID = uuid.NewString()
	req.Status = models.StatusPending
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	if req.Urgency == "" {
		req.Urgency = models.UrgencyMedium
	}

	requests, err := store.Collection[models.PurchaseRequest](s.store, store.KeyPurchaseRequests)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	requests = append(requests, req)
	if err := store.SaveCollection(s.store, store.KeyPurchaseRequests, requests); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, req)
}

// TransitionRequest moves a request through the state machine. Entry into
// completed applies the purchase to inventory, guarded by the processed
// ledger so a replayed completion does not increment stock twice.
func (s *Server) TransitionRequest(c *gin.Context) {
	var body struct {
		Status models.RequestStatus `json:"status"`
		Actor  string               `json:"actor"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requests, err := store.Collection[models.PurchaseRequest](s.store, store.KeyPurchaseRequests)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	idx := -1
	for i := range requests {
		if requests[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if !models.CanTransition(requests[idx].Status, body.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "invalid transition",
			"from":  requests[idx].Status,
			"to":    body.Status,
		})
		return
	}

	requests[idx].Status = body.Status
	requests[idx].UpdatedAt = time.Now()
	if body.Actor != "" {
		requests[idx].RequestedBy = body.Actor
	}
	if err := store.SaveCollection(s.store, store.KeyPurchaseRequests, requests); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if body.Status == models.StatusCompleted {
		s.applyCompletedPurchase(requests[idx])
	}
	c.JSON(http.StatusOK, requests[idx])
}

// applyCompletedPurchase runs the one-way stock increment for a completion,
// at most once per request id.
func (s *Server) applyCompletedPurchase(req models.PurchaseRequest) {
	synced, err := s.engine.WasSynced(req.ID)
	if err != nil {
		log.Printf("api: ledger check for %s failed: %v", req.ID, err)
		return
	}
	if synced {
		log.Printf("api: request %s already applied to inventory, skipping", req.ID)
		return
	}
	if err := s.engine.SyncPurchaseToInventory(req); err != nil {
		log.Printf("api: inventory sync for %s failed: %v", req.ID, err)
		return
	}
	if err := s.engine.MarkSynced(req.ID); err != nil {
		log.Printf("api: ledger update for %s failed: %v", req.ID, err)
	}
}

// MoveRequestToPending sets the one-way movedToPending flag on a completed
// request, marking transfer into the pending-inventory domain.
func (s *Server) MoveRequestToPending(c *gin.Context) {
	requests, err := store.Collection[models.PurchaseRequest](s.store, store.KeyPurchaseRequests)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	for i := range requests {
		if requests[i].ID != id {
			continue
		}
		if requests[i].Status != models.StatusCompleted {
			c.JSON(http.StatusConflict, gin.H{"error": "only completed requests can move to pending inventory"})
			return
		}
		requests[i].MovedToPending = true
		requests[i].UpdatedAt = time.Now()
		if err := store.SaveCollection(s.store, store.KeyPurchaseRequests, requests); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, requests[i])
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}
