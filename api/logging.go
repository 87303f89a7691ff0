package api

// Structured log keys and component names shared by the server.
const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeySession   = "session"
	LogKeyZone      = "zone"
	LogKeyDate      = "date"
	LogKeyPort      = "port"
	LogKeyDB        = "db"
	LogKeyInterval  = "interval"
	LogKeyTTL       = "ttl"
	LogKeyCount     = "count"
)

const (
	CompMain   = "main"
	CompAPI    = "api"
	CompReaper = "reaper"
)
