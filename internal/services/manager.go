package services

import (
	"time"
)

type ServiceManager struct {
	Game   *GameService
	Stats  *StatsService
	Herald *HeraldService
}

func NewServiceManager(store Store, narrator Narrator, loc *time.Location) *ServiceManager {
	game := NewGameService(store, narrator, loc)

	return &ServiceManager{
		Game:   game,
		Stats:  NewStatsService(game),
		Herald: nil,
	}
}

func (sm *ServiceManager) SetNotificationSender(sender NotificationSender) {
	sm.Herald = NewHeraldService(sender, sm.Game, sm.Stats)
}
