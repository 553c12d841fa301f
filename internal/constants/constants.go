package constants

// Centralized constants for env keys, routes and API error strings.
const (
	// Environment variable keys
	EnvConfigPath = "BONEGLAIVE_CONFIG"
	EnvDBPath     = "BONEGLAIVE_DB"
	EnvDebug      = "BONEGLAIVE_DEBUG"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"

	// JSON response keys
	JSONKeyError   = "error"
	JSONKeyMessage = "message"

	// Route paths
	RouteAPIPrefix      = "/api"
	RouteRoster         = "/roster"
	RouteOpenGames      = "/games/open"
	RouteGames          = "/games"
	RouteGameByCode     = "/games/:gameCode"
	RouteGameJoin       = "/games/:gameCode/join"
	RouteGameEvents     = "/games/:gameCode/events"
	RouteGameOrders     = "/games/:gameCode/orders"
	RouteGameSnapshots  = "/games/:gameCode/snapshots"
	RouteGameSnapshot   = "/games/:gameCode/snapshots/:turn"
	RouteVersion        = "/version"

	// Log field names
	LogFieldGameID = "game_id"
	LogFieldPlayer = "player"
	LogFieldTurn   = "turn"
	LogFieldAddr   = "addr"

	// API error strings
	ErrInvalidGameID         = "invalid game code"
	ErrGameNotFound          = "game not found"
	ErrGameNotInProgress     = "game is not in progress"
	ErrOrdersLockedResolving = "orders are locked; resolving current turn"
	ErrInvalidRequest        = "invalid request payload"
	ErrPlayerNotInThisGame   = "player is not part of this game"
	ErrFailedStoreOrder      = "failed to store orders"
	ErrFailedCreateGame      = "failed to create game"
	ErrFailedJoinGame        = "failed to join game"
	ErrFailedFetchGames      = "failed to fetch games"
	ErrFailedEncodeGame      = "failed to encode game"
	ErrGameFull              = "game already has two players"
	ErrSnapshotNotFound      = "snapshot not found"
	ErrInvalidTurn           = "invalid turn number"
)
