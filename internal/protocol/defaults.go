// Package protocol loads, validates and persists the habit configuration.
package protocol

import "github.com/verte-zerg/komorebi/internal/model"

// DefaultPersona is applied when a stored configuration has no persona.
var DefaultPersona = model.PersonaConfig{Anima: "Jaguar", Archetype: "Warrior King", Symbol: "Tree"}

// Default returns a fresh copy of the built-in configuration.
func Default() model.AppConfig {
	return model.AppConfig{
		Levels:  model.LevelThresholds{Elite: 6500, Strong: 5000, Survival: 3500},
		MaxXP:   9000,
		Persona: DefaultPersona,
		Library: model.Library{
			MentalModels: []model.LibraryItem{
				{Name: "First Principles Thinking", Desc: "Reduce problems to fundamental truths, build upward."},
				{Name: "Second-Order Thinking", Desc: "Consider consequences beyond the immediate."},
				{Name: "Inversion", Desc: "Think backward: how could this fail? Then avoid it."},
				{Name: "Probabilistic Thinking", Desc: "Evaluate decisions using likelihoods, not certainties."},
				{Name: "Hanlon’s Razor", Desc: "Never attribute to malice what can be explained by stupidity."},
				{Name: "Pareto Principle", Desc: "80% of effects come from 20% of causes."},
				{Name: "Occam’s Razor", Desc: "Prefer the simplest explanation that fits the data."},
				{Name: "Compound Effect", Desc: "Small, smart choices + consistency + time = radical difference."},
				{Name: "Circle of Competence", Desc: "Operate within your area of true knowledge."},
				{Name: "Map ≠ Territory", Desc: "Symbols are not reality."},
			},
			Productivity: []model.LibraryItem{
				{Name: "Deep Work", Desc: "Dedicate blocks of time to distraction-free cognitive work."},
				{Name: "Eat That Frog", Desc: "Do the biggest, ugliest task first thing."},
				{Name: "Pomodoro Technique", Desc: "25 min focus, 5 min diffuse mode."},
				{Name: "2-Minute Rule", Desc: "If it takes < 2 mins, do it now."},
				{Name: "Time Boxing", Desc: "Schedule every minute of your day."},
				{Name: "Eisenhower Matrix", Desc: "Urgent vs Important."},
				{Name: "Flow State", Desc: "Balance challenge and skill to enter the zone."},
			},
			Investors: []model.LibraryItem{
				{Name: "Stanley Druckenmiller", Resource: "The Genius of Stan Druckenmiller", Years: "30 Years"},
				{Name: "Warren Buffett", Resource: "Berkshire Shareholder Letters", Years: "55 Years"},
				{Name: "Charlie Munger", Resource: "Poor Charlie's Almanack", Years: "Wisdom"},
				{Name: "Naval Ravikant", Resource: "The Almanack of Naval Ravikant", Years: "Modern"},
			},
			Quotes: []string{
				"“Discipline equals freedom.” — Jocko Willink",
				"“The impediment to action advances action.” — Marcus Aurelius",
				"“Slow is smooth, smooth is fast.” — Navy SEALs",
				"“We suffer more in imagination than in reality.” — Seneca",
				"“Amor Fati.” — Friedrich Nietzsche",
			},
		},
		Workouts: []model.Workout{
			{Title: "Sunday", Desc: "Endurance/Cardio (Swim, Hike, Long Zone 2)"},
			{Title: "Monday", Desc: "Lower Body Strength (Squat/Deadlift, Posterior Chain)"},
			{Title: "Tuesday", Desc: "Sauna + Cold Exposure (3-5 Rounds)"},
			{Title: "Wednesday", Desc: "Upper Body Strength (Push/Pull, Delts)"},
			{Title: "Thursday", Desc: "Cardio Endurance (Row/Ski/Run/Bike/Ruck)"},
			{Title: "Friday", Desc: "HIIT (Bike, Row, Sled, KB Swings)"},
			{Title: "Saturday", Desc: "Hypertrophy (Arms, Core, Calves, Neck)"},
		},
		Protocols: []model.ProtocolSection{
			{
				Title:   "Health & Physiology",
				Columns: 3,
				Cards: []model.ProtocolCard{
					{
						ID: "sleep", Title: "Sleep Hygiene", MaxXP: 1000, ScoringType: model.ScoringSum,
						Items: []model.ProtocolItem{
							{ID: "s1", Label: "7+ Hours Sleep", XP: 400},
							{ID: "s2", Label: "No Blue Light 1hr pre-bed", XP: 200},
							{ID: "s3", Label: "Consistent Wake Time", XP: 200},
							{ID: "s4", Label: "Mouth Taping / Nasal", XP: 200},
						},
					},
					{
						ID: "nutrition", Title: "Nutrition", MaxXP: 1000, ScoringType: model.ScoringSum,
						Items: []model.ProtocolItem{
							{ID: "n1", Label: "Clean Eating (No Junk)", XP: 300},
							{ID: "n2", Label: "Hit Protein Goal", XP: 300},
							{ID: "n3", Label: "Hydration (3L+)", XP: 200},
							{ID: "n4", Label: "Supplements Taken", XP: 200},
						},
					},
					{
						ID: "movement", Title: "Movement", MaxXP: 1000, ScoringType: model.ScoringSum,
						Items: []model.ProtocolItem{
							{ID: "m1", Label: "Main Workout", XP: 500},
							{ID: "m2", Label: "10k Steps", XP: 300},
							{ID: "m3", Label: "Stretching/Mobility", XP: 200},
						},
					},
				},
			},
			{
				Title:   "Deep Work & Mind",
				Columns: 2,
				Cards: []model.ProtocolCard{
					{
						ID: "focus", Title: "Deep Work", MaxXP: 1500, ScoringType: model.ScoringSum,
						Items: []model.ProtocolItem{
							{ID: "dw1", Label: "4h Deep Work", XP: 800},
							{ID: "dw2", Label: "No Social Media", XP: 400},
							{ID: "dw3", Label: "Plan Tomorrow", XP: 300},
						},
					},
					{
						ID: "mind", Title: "Mindset", MaxXP: 1000, ScoringType: model.ScoringSum,
						Items: []model.ProtocolItem{
							{ID: "mi1", Label: "Meditation (10m)", XP: 300},
							{ID: "mi2", Label: "Reading (30m)", XP: 300},
							{ID: "mi3", Label: "Journaling", XP: 200},
							{ID: "mi4", Label: "Gratitude", XP: 200},
						},
					},
				},
			},
		},
	}
}
