package core

type NonSecretConf struct {
	DevMode              bool
	DisableStdoutLog     bool
	EnableFileLog        bool
	LogDir               string
	LogLevel             string
	LogRotationMaxDays   int
	InputQubits          int
	Shots                int
	ConstantThreshold    float64
	MaxQubits            int
	MaxShots             int
	QueueMaxSize         int
	QueueRefillThreshold int
}

type Info struct {
	Conf *NonSecretConf
}

var CurrentInfo *Info

func SetInfo(c *Conf) {
	conf := &NonSecretConf{
		DevMode:              c.DevMode,
		DisableStdoutLog:     c.DisableStdoutLog,
		EnableFileLog:        c.EnableFileLog,
		LogDir:               c.LogDir,
		LogLevel:             c.LogLevel,
		LogRotationMaxDays:   c.LogRotationMaxDays,
		InputQubits:          c.InputQubits,
		Shots:                c.Shots,
		ConstantThreshold:    c.ConstantThreshold,
		MaxQubits:            c.MaxQubits,
		MaxShots:             c.MaxShots,
		QueueMaxSize:         c.QueueMaxSize,
		QueueRefillThreshold: c.QueueRefillThreshold,
	}

	CurrentInfo = &Info{
		Conf: conf,
	}
}
