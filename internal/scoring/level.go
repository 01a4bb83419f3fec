package scoring

import "github.com/verte-zerg/komorebi/internal/model"

// ClassifyLevel maps a total to its tier. Thresholds are checked elite first and
// are inclusive, so a total equal to a threshold earns that tier. When an authored
// configuration breaks elite > strong > survival, the elite-first order still decides.
func ClassifyLevel(totalXP int, levels model.LevelThresholds) model.Level {
	switch {
	case totalXP >= levels.Elite:
		return model.LevelElite
	case totalXP >= levels.Strong:
		return model.LevelStrong
	case totalXP >= levels.Survival:
		return model.LevelSurvival
	default:
		return model.LevelRedZone
	}
}

// NextLevel returns the next tier above the current total and the XP still needed.
// ok is false when the total is already elite.
func NextLevel(totalXP int, levels model.LevelThresholds) (next model.Level, toGo int, ok bool) {
	switch {
	case totalXP < levels.Survival:
		return model.LevelSurvival, levels.Survival - totalXP, true
	case totalXP < levels.Strong:
		return model.LevelStrong, levels.Strong - totalXP, true
	case totalXP < levels.Elite:
		return model.LevelElite, levels.Elite - totalXP, true
	default:
		return "", 0, false
	}
}
