package constants

// Centralized constants for env keys, headers, routes and the OpenAI
// integration used by the battle-report generator.
const (
	// Environment variable keys
	EnvConfigPath   = "IMMUNO_CONFIG"
	EnvDatabasePath = "IMMUNO_DB"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvDebug        = "IMMUNO_DEBUG"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// OpenAI API endpoints and base URL
	OpenAIBaseURL             = "https://api.openai.com"
	OpenAIChatCompletionsPath = "/v1/chat/completions"

	// OpenAI model name used for battle reports
	OpenAIChatModel = "gpt-5-nano"
)

// Routes used by the backend router
const (
	RouteAPIPrefix    = "/api"
	RouteHealth       = "/health"
	RouteAntibodies   = "/antibodies"
	RoutePathogens    = "/pathogens"
	RouteBattles      = "/battles"
	RouteBattleByID   = "/battles/:battleID"
	RouteBattleReport = "/battles/:battleID/report"
	RouteBattleStream = "/battles/stream"
	RouteSignatures   = "/signatures"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest     = "Invalid request"
	ErrInvalidBattleID    = "Invalid battle ID"
	ErrBattleNotFound     = "Battle not found"
	ErrFailedFetchCatalog = "Failed to fetch unit catalog"
	ErrFailedFetchBattles = "Failed to fetch battles"
	ErrFailedRunBattle    = "Failed to run battle"
	ErrFailedFetchSigs    = "Failed to fetch pathogen signatures"
	ErrFailedReport       = "Failed to generate battle report"
	ErrEmptyRoster        = "Both sides need at least one unit"
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldSeed     = "seed"
	LogFieldTurn     = "turn"
	LogFieldVictory  = "victory"
	LogFieldSpecies  = "species"
	LogFieldAddr     = "addr"
)
