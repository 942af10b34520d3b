package meta

var (
	AppVersion = "v1.x"
)

const (
	AppName = "keyswap"

	SwapAppName        = "auth0-swap"
	SwapAppDescription = "Replace the Auth0 keywords of one environment with the ones of another"

	RestoreAppName        = "auth0-restore"
	RestoreAppDescription = "Replace Auth0 keyword values back with their keywords"

	InputsAppName        = "ci-inputs"
	InputsAppDescription = "Forward CI event payload and workflow inputs to the step outputs"

	// MappingsField is the top-level field of a mapping document
	// holding the keyword to value table.
	MappingsField = "AUTH0_KEYWORD_REPLACE_MAPPINGS"

	BackupSuffix = ".bak"
	DryRunFlag   = "--dry-run"

	EnvVarPrefix = "KEYSWAP_"
)

// CI event passthrough
const (
	EventPathEnvVar   = "GITHUB_EVENT_PATH"
	OutputPathEnvVar  = "GITHUB_OUTPUT"
	InputEnvVarPrefix = "INPUT_"
	EventPayloadField = "client_payload"
)
