package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/psyclimb/Boneglaive/internal/constants"
	"github.com/psyclimb/Boneglaive/internal/dedupe"
	"github.com/psyclimb/Boneglaive/internal/game"

	"github.com/gin-gonic/gin"
)

// ListRoster returns the playable unit definitions. Summon-only units are
// included so clients can render them when they appear mid-game.
func (h *GameHandler) ListRoster(c *gin.Context) {
	units := make([]game.UnitDef, 0, len(h.roster.Units))
	for _, u := range h.roster.Units {
		units = append(units, u)
	}
	skills := make([]game.Skill, 0, len(h.roster.Skills))
	for _, s := range h.roster.Skills {
		skills = append(skills, s)
	}
	statuses := make([]game.StatusDef, 0, len(h.roster.Statuses))
	for _, s := range h.roster.Statuses {
		statuses = append(statuses, s)
	}
	c.JSON(http.StatusOK, gin.H{"units": units, "skills": skills, "statuses": statuses})
}

// ListOpenGames returns recent games still waiting for an opponent.
func (h *GameHandler) ListOpenGames(c *gin.Context) {
	games, err := h.repo.GetOpenGames()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchGames})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(games)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchGames})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetGame returns the full match state by join code.
func (h *GameHandler) GetGame(c *gin.Context) {
	g, ok := h.gameFromCode(c)
	if !ok {
		return
	}
	full, err := h.repo.GetGameByID(g.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(full)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeGame})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetEvents returns the ordered event log, optionally only entries after
// the ?after sequence number so clients can poll incrementally.
func (h *GameHandler) GetEvents(c *gin.Context) {
	g, ok := h.gameFromCode(c)
	if !ok {
		return
	}
	full, err := h.repo.GetGameByID(g.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return
	}

	after := uint64(0)
	if s := c.Query("after"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
			return
		}
		after = v
	}

	events := full.Events
	if after > 0 {
		filtered := make([]game.Event, 0, len(events))
		for _, e := range events {
			if e.Seq > after {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "latest_seq": full.EventSeq})
}

// ListSnapshots returns the checksums of every persisted turn snapshot for
// a game, ordered by turn. Clients compare checksums to detect divergence
// without downloading full state.
func (h *GameHandler) ListSnapshots(c *gin.Context) {
	g, ok := h.gameFromCode(c)
	if !ok {
		return
	}
	snaps, err := h.repo.ListSnapshots(g.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchGames})
		return
	}
	type entry struct {
		Turn     int    `json:"turn"`
		Checksum string `json:"checksum"`
	}
	out := make([]entry, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, entry{Turn: s.Turn, Checksum: s.Checksum})
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": out})
}

// GetSnapshot returns the canonical serialization of the game after a
// specific resolved turn. Concurrent fetches for the same turn collapse
// into a single query; rows are immutable so sharing the result is safe.
func (h *GameHandler) GetSnapshot(c *gin.Context) {
	g, ok := h.gameFromCode(c)
	if !ok {
		return
	}
	turn, err := strconv.Atoi(c.Param("turn"))
	if err != nil || turn < 1 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidTurn})
		return
	}

	key := fmt.Sprintf("%d:%d", g.ID, turn)
	v, err, _ := dedupe.SnapshotGroup.Do(key, func() (interface{}, error) {
		return h.repo.GetSnapshot(g.ID, turn)
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrSnapshotNotFound})
		return
	}
	snap := v.(*game.TurnSnapshot)

	c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
	c.JSON(http.StatusOK, gin.H{
		"turn":     snap.Turn,
		"checksum": snap.Checksum,
		"state":    json.RawMessage(snap.Data),
	})
}
