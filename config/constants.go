package config

// Target game, window titles in lookup order
const (
	WINDOW_UNREAL    = "Unreal"
	WINDOW_UT        = "Unreal Tournament"
	WINDOW_UT2004    = "Unreal Tournament 2004"
	BASE_MODULE_NAME = "Engine.dll"
)

// Toolhelp snapshot scopes
const (
	TH32CS_SNAPMODULE   = 0x00000008
	TH32CS_SNAPMODULE32 = 0x00000010

	SNAPSHOT_SCOPE_32 = TH32CS_SNAPMODULE | TH32CS_SNAPMODULE32
	SNAPSHOT_SCOPE_64 = TH32CS_SNAPMODULE
)

// Trainer attach
const (
	PROCESS_QUERY_INFORMATION = 0x0400
	PROCESS_VM_READ           = 0x0010

	TRAINER_ACCESS = PROCESS_QUERY_INFORMATION | PROCESS_VM_READ

	IMAGE_DOS_SIGNATURE = "MZ"
)

// Exit codes
const (
	EXIT_OK    = 0
	EXIT_FATAL = 1
)

// Overlay settings
const (
	SCREEN_WIDTH  = 420
	SCREEN_HEIGHT = 180

	DEFAULT_CONFIG_FILE = "trainer.toml"
)
