package storage

import (
	"time"

	"github.com/psyclimb/Boneglaive/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateGame(g *game.GameState) error {
	return r.db.Create(g).Error
}

func (r *sqliteRepository) GetGameByID(id uint) (*game.GameState, error) {
	var g game.GameState
	err := r.db.Preload("Players").Preload("Units").First(&g, id).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *sqliteRepository) FindGameByJoinCode(code string) (*game.GameState, error) {
	var g game.GameState
	err := r.db.Preload("Players").Preload("Units").Where("join_code = ?", code).First(&g).Error
	return &g, err
}

func (r *sqliteRepository) UpdateGame(g *game.GameState) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(g).Error
}

func (r *sqliteRepository) GetOpenGames() ([]game.GameState, error) {
	var games []game.GameState
	tenMinutesAgo := time.Now().Add(-10 * time.Minute)
	if err := r.db.Preload("Players").
		Where("status = ? AND created_at > ?", game.StatusWaiting, tenMinutesAgo).
		Order("created_at desc").Find(&games).Error; err != nil {
		return nil, err
	}
	// Only return games with at least one player waiting
	filtered := make([]game.GameState, 0, len(games))
	for i := range games {
		if len(games[i].Players) >= 1 {
			filtered = append(filtered, games[i])
		}
	}
	return filtered, nil
}

func (r *sqliteRepository) SaveSnapshot(s *game.TurnSnapshot) error {
	return r.db.Create(s).Error
}

func (r *sqliteRepository) ListSnapshots(gameID uint) ([]game.TurnSnapshot, error) {
	var snaps []game.TurnSnapshot
	if err := r.db.Where("game_id = ?", gameID).Order("turn asc").Find(&snaps).Error; err != nil {
		return nil, err
	}
	return snaps, nil
}

func (r *sqliteRepository) GetSnapshot(gameID uint, turn int) (*game.TurnSnapshot, error) {
	var s game.TurnSnapshot
	if err := r.db.Where("game_id = ? AND turn = ?", gameID, turn).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
