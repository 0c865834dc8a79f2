package game

import "github.com/Garsondee/Relic-Stalker/internal/logger"

var (
	mazeLog      = logger.Component("maze")
	placementLog = logger.Component("placement")
)
