package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/constants"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/logging"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/narrative"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/service"
)

// CreateBattle runs a full battle simulation and returns the persisted
// record ID together with the complete combat result.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req service.BattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.TurnCap == 0 {
		req.TurnCap = h.turnCap
	}

	rec, res, err := service.RunBattle(h.repo, req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyRoster) {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrEmptyRoster})
			return
		}
		logging.Error("failed to run battle", err, nil)
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"battle_id": rec.ID,
		"result":    res,
	})
}

// GetBattle returns a persisted battle record with its full result.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("battleID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	rec, err := service.GetBattle(h.repo, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrBattleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
			return
		}
		logging.Error("failed to fetch battle", err, logging.Fields{constants.LogFieldBattleID: id})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"battle_id": rec.ID,
		"seed":      rec.Seed,
		"result":    rec.Result(),
		"narrative": rec.Narrative,
	})
}

// ListBattles returns the most recent battle records.
func (h *BattleHandler) ListBattles(c *gin.Context) {
	limit := 20
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}
	battles, err := h.repo.ListRecentBattles(limit)
	if err != nil {
		logging.Error("failed to list battles", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	c.JSON(http.StatusOK, battles)
}

// GetBattleReport returns the AI-generated battle narrative, producing and
// caching it on first request.
func (h *BattleHandler) GetBattleReport(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("battleID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	report, err := service.GetBattleReport(h.repo, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBattleNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case errors.Is(err, narrative.ErrNoAPIKey):
			c.JSON(http.StatusServiceUnavailable, gin.H{constants.JSONKeyError: constants.ErrFailedReport})
		default:
			logging.Error("failed to generate battle report", err, logging.Fields{constants.LogFieldBattleID: id})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedReport})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"battle_id": id, "report": report})
}
