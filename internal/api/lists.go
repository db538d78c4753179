package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"launchops/internal/models"
	"launchops/internal/store"
)

// ListPurchaseLists returns the purchase list collection.
func (s *Server) ListPurchaseLists(c *gin.Context) {
	lists, err := store.Collection[models.PurchaseList](s.store, store.KeyPurchaseLists)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, lists)
}

// CreatePurchaseList persists a new list with its total recomputed.
func (s *Server) CreatePurchaseList(c *gin.Context) {
	var list models.PurchaseList
	if err := c.ShouldBindJSON(&list); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list.ID = uuid.NewString()
	list.RecalculateTotal()

	lists, err := store.Collection[models.PurchaseList](s.store, store.KeyPurchaseLists)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	lists = append(lists, list)
	if err := store.SaveCollection(s.store, store.KeyPurchaseLists, lists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, list)
}

// UpdatePurchaseList replaces the list with the given id, recomputing its
// total from the submitted items.
func (s *Server) UpdatePurchaseList(c *gin.Context) {
	var incoming models.PurchaseList
	if err := c.ShouldBindJSON(&incoming); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lists, err := store.Collection[models.PurchaseList](s.store, store.KeyPurchaseLists)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	for i := range lists {
		if lists[i].ID != id {
			continue
		}
		incoming.ID = id
		incoming.RecalculateTotal()
		lists[i] = incoming
		if err := store.SaveCollection(s.store, store.KeyPurchaseLists, lists); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, incoming)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

// ListVendors returns the vendor directory.
func (s *Server) ListVendors(c *gin.Context) {
	vendors, err := store.Collection[models.Vendor](s.store, store.KeyVendors)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, vendors)
}

// ListUsers returns the user directory.
func (s *Server) ListUsers(c *gin.Context) {
	users, err := store.Collection[models.User](s.store, store.KeyUsers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}
