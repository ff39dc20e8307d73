package telegram

const (
	helpText = "👋 I track boss respawn timers.\n\n" +
		"/addboss name;location;HH:MM — register a boss and its respawn period\n" +
		"/listboss — all registered bosses\n" +
		"/delboss number|name — remove a boss\n" +
		"/editboss number;new name;HH:MM[;location] — edit a boss\n" +
		"/killnow name — record a kill right now\n" +
		"/killat name HH:MM — record a kill at a time today (or late yesterday)\n" +
		"/incoming — upcoming spawns, soonest first\n" +
		"/find text — search boss names\n\n" +
		"I post a spawn alert to the configured channel once per kill, shortly before each respawn."

	addUsage  = "Usage: /addboss name;location;HH:MM (period as hours:minutes, e.g. 06:00)"
	editUsage = "Usage: /editboss number;new name;HH:MM[;location] — leave a field empty to keep it"
)
