package config

import "github.com/spf13/viper"

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Storage struct {
		Driver string // postgres | sqlite
		DSN    string // postgres
		Path   string // sqlite
	} `mapstructure:"storage"`

	Mirror struct {
		Driver string // s3 | fs | off
		Path   string // fs

		S3 struct {
			Bucket    string
			Key       string
			Region    string
			Endpoint  string
			PathStyle bool `mapstructure:"path_style"`
		} `mapstructure:"s3"`
	} `mapstructure:"mirror"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	// Секрети та оточення можна перекривати через ENV (APP_*).
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "sqlite"
	}
	if c.Storage.Driver == "sqlite" && c.Storage.Path == "" {
		c.Storage.Path = "cartridges.db"
	}
	return c, nil
}
