package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"launchops/internal/models"
	"launchops/internal/store"
)

// ListInventory returns the full inventory collection.
func (s *Server) ListInventory(c *gin.Context) {
	items, err := store.Collection[models.InventoryItem](s.store, store.KeyInventory)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListLowStock returns only the items at or below their low-stock threshold.
func (s *Server) ListLowStock(c *gin.Context) {
	items, err := store.Collection[models.InventoryItem](s.store, store.KeyInventory)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	low := []models.InventoryItem{}
	for _, item := range items {
		if item.CurrentStock <= item.LowStockThreshold() {
			low = append(low, item)
		}
	}
	c.JSON(http.StatusOK, low)
}

// CreateInventoryItem appends a new item to the collection.
func (s *Server) CreateInventoryItem(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if item.Name == "" || item.Vendor == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and vendor are required"})
		return
	}

	item.ID = uuid.NewString()
	item.LastUpdated = time.Now()
	if item.Location == "" {
		item.Location = models.DefaultLocation
	}

	items, err := store.Collection[models.InventoryItem](s.store, store.KeyInventory)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	items = append(items, item)
	if err := store.SaveCollection(s.store, store.KeyInventory, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateInventoryItem replaces the stored item with the given id.
func (s *Server) UpdateInventoryItem(c *gin.Context) {
	var incoming models.InventoryItem
	if err := c.ShouldBindJSON(&incoming); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := store.Collection[models.InventoryItem](s.store, store.KeyInventory)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	for i := range items {
		if items[i].ID != id {
			continue
		}
		incoming.ID = id
		incoming.LastUpdated = time.Now()
		items[i] = incoming
		if err := store.SaveCollection(s.store, store.KeyInventory, items); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, incoming)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}
