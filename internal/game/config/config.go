// Package config centralizes all tunable game parameters.
package config

import "time"

// Play field in logical pixels.
const (
	FieldWidth  = 1920
	FieldHeight = 800
)

// Player ship
const (
	PlayerWidth   = 40
	PlayerHeight  = 60
	PlayerStartX  = 200
	PlayerSpeed   = 5.0 // Pixels per tick
	LaserCooldown = 500 * time.Millisecond
)

// Obstacles (asteroids and aliens share a footprint)
const (
	ObstacleWidth    = 50
	ObstacleHeight   = 30
	InitialFallSpeed = 3.0 // Pixels per tick
)

// Lasers
const (
	LaserWidth  = 30
	LaserHeight = 75
	LaserSpeed  = 7.0 // Pixels per tick, upward
)

// Spawning
const (
	AsteroidInterval      = 3 * time.Second
	BurstInitialThreshold = 2000 * time.Millisecond
	BurstThresholdStep    = 50 * time.Millisecond
	BurstSize             = 3
	AlienInterval         = 3 * time.Second
	MinSpawnInterval      = 200 * time.Millisecond // Also the burst threshold floor
)

// Progression
const (
	LevelDuration      = 10 * time.Second
	ForwardMoveLevel   = 5
	ShootingLevel      = 10
	AlienLevel         = 10
	EarlyFallSpeedStep = 1.0 // Per level while below LateSpeedLevel
	LateFallSpeedStep  = 0.5
	LateSpeedLevel     = 5
	AlienReward        = 1
	MessageDuration    = 3 * time.Second
)

// Scores
const (
	MaxScoreEntries   = 5
	DefaultScoresFile = "top_scores.json"
	MaxUsernameLength = 16 // Maximum display length for player names
)

// Presentation timings
const (
	GameOverDelay       = 2 * time.Second // "You lost!" banner before prompts
	TopScoresDisplay    = 3 * time.Second
	ExplosionDuration   = time.Second
	VolumeStep          = 0.05
	DefaultVolume       = 0.5
	ExplosionParticles  = 24
	StarsPerLayer       = 40
	BackgroundNearSpeed = 2.0 // Pixels per tick
	BackgroundFarSpeed  = 1.0
)

// Inactivity (SSH sessions)
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 240
	MaxTermHeight         = 60
)
