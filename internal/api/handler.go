package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/constants"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/storage"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/version"
)

// BattleHandler serves the combat API: unit catalog, battle simulation,
// battle history, signatures and the live stream.
type BattleHandler struct {
	repo storage.Repository
	// turnCap is the configured maximum-turn override; 0 keeps the
	// engine default.
	turnCap int
}

func NewBattleHandler(repo storage.Repository, turnCap int) *BattleHandler {
	return &BattleHandler{repo: repo, turnCap: turnCap}
}

// Health reports liveness plus build information for container probes.
func (h *BattleHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyStatus: "ok",
		"version":               version.Version,
		"commit":                version.Commit,
	})
}
