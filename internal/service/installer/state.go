package installer

// Settings is what the wizard collects. Field tags name the variables
// written to the runtime .env file.
type Settings struct {
	TMDBAPIKey     string  `env:"TMDB_API_KEY"`
	ListenAddr     string  `env:"CINE_LISTEN_ADDR"`
	EnableWebhook  string  `env:"CINE_ENABLE_WEBHOOK"`
	EnableTelegram string  `env:"CINE_ENABLE_TELEGRAM"`
	TelegramToken  string  `env:"CINE_TELEGRAM_TOKEN"`
	AllowedChats   []int64 `env:"CINE_TELEGRAM_ALLOWED_CHATS" envSeparator:","`
	Debug          string  `env:"CINE_DEBUG"`
}

type InstallState struct {
	Settings Settings
	// Channel is the front end picked in the wizard. Only used as
	// intermediate state.
	Channel string
}

func NewInstallState() *InstallState {
	return &InstallState{}
}
