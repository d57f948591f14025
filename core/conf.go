package core

type Conf struct {
	Version              string  `long:"version" description:"version of dj edge server" env:"DJ_EDGE_VERSION"`
	DevMode              bool    `long:"dev-mode" description:"run in dev mode" env:"DJ_EDGE_DEV_MODE"`
	DisableStdoutLog     bool    `long:"disable-stdout-log" description:"do not log in standard output" env:"DJ_EDGE_DISABLE_STDOUT_LOG"`
	EnableFileLog        bool    `long:"enable-file-log" description:"enable log in file" env:"DJ_EDGE_ENABLE_FILE_LOG"`
	LogDir               string  `long:"log-dir" description:"rotating log file dir" default:"./shares/logs" env:"DJ_EDGE_LOG_DIR"`
	LogLevel             string  `long:"log-level" description:"log level" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error" env:"DJ_EDGE_LOG_LEVEL"`
	LogRotationMaxDays   int     `long:"log-rotation-max-days" description:"max days of log rotation" default:"7" env:"DJ_EDGE_LOG_ROTATION_MAX_DAYS"`
	InputQubits          int     `long:"input-qubits" description:"number of input qubits for each oracle run" default:"3" env:"DJ_EDGE_INPUT_QUBITS"`
	Shots                int     `long:"shots" description:"measurement shots per oracle run" default:"1000" env:"DJ_EDGE_SHOTS"`
	ConstantThreshold    float64 `long:"constant-threshold" description:"all-zero probability above which a run is classified constant" default:"0.9" env:"DJ_EDGE_CONSTANT_THRESHOLD"`
	SamplerSeed          int64   `long:"sampler-seed" description:"seed for the measurement sampler. 0 means time-based" env:"DJ_EDGE_SAMPLER_SEED"`
	MaxQubits            int     `long:"max-qubits" description:"max total qubits the local simulator accepts" default:"20" env:"DJ_EDGE_MAX_QUBITS"`
	MaxShots             int     `long:"max-shots" description:"max shots the local simulator accepts" default:"100000" env:"DJ_EDGE_MAX_SHOTS"`
	QueueMaxSize         int     `long:"queue-max-size" description:"queue max size" default:"100" env:"DJ_EDGE_QUEUE_MAX_SIZE"`
	QueueRefillThreshold int     `long:"queue-refill-threshold" description:"queue refill threshold" default:"10" env:"DJ_EDGE_QUEUE_REFILL_THRESHOLD"`
	SettingPath          string  `long:"setting-path" description:"setting file path" default:"./setting/setting.toml" env:"DJ_EDGE_SETTING_PATH"`
}
