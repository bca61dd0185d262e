package tui

import "time"

// healthTips rotates on the dashboard, one tip per weekday.
var healthTips = []string{
	"Drink at least 8 glasses of water a day.",
	"A 15-minute walk can significantly boost your mood.",
	"Consistency is key. A short workout every day is better than one long weekly session.",
	"Sleep at least 7-8 hours a night to help your body recover.",
	"Incorporate more leafy greens into your diet.",
	"Stretch for 5 minutes after sitting for long periods.",
	"Mindfulness and meditation can lower stress levels.",
	"\"Take care of your body. It's the only place you have to live.\"",
	"\"The groundwork for all happiness is good health.\"",
	"\"A healthy outside starts from the inside.\"",
}

// TipForDay picks the tip shown for the given weekday.
func TipForDay(day time.Weekday) string {
	return healthTips[int(day)%len(healthTips)]
}
