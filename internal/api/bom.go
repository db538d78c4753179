package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"launchops/internal/models"
)

// BOMShortfall previews the purchase request drafts a bill of materials
// would need. Nothing is persisted; callers decide what to do with the
// drafts.
func (s *Server) BOMShortfall(c *gin.Context) {
	var bom models.BillOfMaterials
	if err := c.ShouldBindJSON(&bom); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	drafts, err := s.engine.SyncBOMWithInventory(bom)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if drafts == nil {
		drafts = []models.PurchaseRequest{}
	}
	c.JSON(http.StatusOK, drafts)
}

// BOMAllocate consumes stock for the BOM's coverable lines.
func (s *Server) BOMAllocate(c *gin.Context) {
	var bom models.BillOfMaterials
	if err := c.ShouldBindJSON(&bom); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.engine.AllocateInventoryToBOM(bom); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "allocated"})
}
