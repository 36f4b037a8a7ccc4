package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/constants"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/logging"
)

// ListAntibodies returns the configured antibody catalog.
func (h *BattleHandler) ListAntibodies(c *gin.Context) {
	antibodies, err := h.repo.ListAntibodies()
	if err != nil {
		logging.Error("failed to list antibodies", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCatalog})
		return
	}
	c.JSON(http.StatusOK, antibodies)
}

// ListPathogens returns the configured pathogen catalog.
func (h *BattleHandler) ListPathogens(c *gin.Context) {
	pathogens, err := h.repo.ListPathogens()
	if err != nil {
		logging.Error("failed to list pathogens", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCatalog})
		return
	}
	c.JSON(http.StatusOK, pathogens)
}

// ListSignatures returns every recorded immune-memory signature for the
// codex screen.
func (h *BattleHandler) ListSignatures(c *gin.Context) {
	sigs, err := h.repo.ListSignatures()
	if err != nil {
		logging.Error("failed to list signatures", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchSigs})
		return
	}
	c.JSON(http.StatusOK, sigs)
}
