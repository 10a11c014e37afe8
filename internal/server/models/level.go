package models

// Level is one tier of the level table.
type Level struct {
	Level       int    `json:"level"`
	Name        string `json:"name"`
	RequiredXP  int    `json:"required_xp"`
	Description string `json:"description"`
}

// Levels is ordered by Level; RequiredXP is strictly increasing.
var Levels = []Level{
	{1, "Beginner", 0, "Starting your yoga journey"},
	{2, "Novice", 100, "Getting the hang of it"},
	{3, "Apprentice", 300, "Building your practice"},
	{4, "Practitioner", 600, "Regular practice"},
	{5, "Dedicated", 1000, "Committed to yoga"},
	{6, "Advanced", 1500, "Advanced practitioner"},
	{7, "Expert", 2200, "Yoga expert"},
	{8, "Master", 3000, "Yoga master"},
	{9, "Guru", 4000, "Yoga guru"},
	{10, "Enlightened", 5000, "Enlightened being"},
}

const MaxLevel = 10

// LevelForXP returns the highest level whose threshold xp reaches.
func LevelForXP(xp int) int {
	for i := len(Levels) - 1; i >= 0; i-- {
		if xp >= Levels[i].RequiredXP {
			return Levels[i].Level
		}
	}
	return 1
}

// LevelInfo returns the table entry for level, clamped to the table.
func LevelInfo(level int) Level {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return Levels[level-1]
}

// NextLevelXP returns the XP still missing for the level after the one xp
// reaches, or nil at the top level.
func NextLevelXP(xp int) *int {
	next := LevelForXP(xp) + 1
	if next > MaxLevel {
		return nil
	}
	gap := Levels[next-1].RequiredXP - xp
	return &gap
}
