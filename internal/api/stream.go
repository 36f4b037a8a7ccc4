package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/constants"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/logging"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The mobile client connects from app origins, not the API origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamFrame is one websocket message: a per-turn delta while the battle
// runs, then a final frame carrying the aggregated result.
type streamFrame struct {
	Type       string      `json:"type"` // "turn" | "result" | "error"
	TurnResult interface{} `json:"turn_result,omitempty"`
	Result     interface{} `json:"result,omitempty"`
	BattleID   uint        `json:"battle_id,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// StreamBattle runs a battle one turn at a time over a websocket so the
// client can animate each action. Query parameters: antibodies and
// pathogens (comma-separated catalog names), seed, delay_ms.
func (h *BattleHandler) StreamBattle(c *gin.Context) {
	req := service.BattleRequest{
		Antibodies: splitNames(c.Query("antibodies")),
		Pathogens:  splitNames(c.Query("pathogens")),
		TurnCap:    h.turnCap,
	}
	if s := c.Query("seed"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			req.Seed = n
		}
	}
	delay := 500 * time.Millisecond
	if s := c.Query("delay_ms"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			delay = time.Duration(n) * time.Millisecond
		}
	}

	eng, ledger, err := service.NewEngagement(h.repo, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		return
	}
	if err := eng.StartCombat(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrEmptyRoster})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", err, nil)
		return
	}
	defer conn.Close()

	for {
		tr := eng.AdvanceTurn()
		if err := conn.WriteJSON(streamFrame{Type: "turn", TurnResult: tr}); err != nil {
			// Client went away; the engine is discarded with no cleanup
			// required beyond closing the socket.
			return
		}
		if !tr.Active {
			break
		}
		time.Sleep(delay)
	}

	res := eng.FinalizeCombat()
	rec, err := service.CompleteBattle(h.repo, eng, ledger, res, req.Seed)
	if err != nil {
		_ = conn.WriteJSON(streamFrame{Type: "error", Error: constants.ErrFailedRunBattle})
		return
	}
	_ = conn.WriteJSON(streamFrame{Type: "result", Result: res, BattleID: rec.ID})
}

func splitNames(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
