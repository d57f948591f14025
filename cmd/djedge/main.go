package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/uuid"
	flags "github.com/jessevdk/go-flags"
	"github.com/massn/envordot"
	"github.com/oklog/run"

	"github.com/oqtopus-team/deutsch-jozsa-engine/backend"
	"github.com/oqtopus-team/deutsch-jozsa-engine/core"
	"github.com/oqtopus-team/deutsch-jozsa-engine/experiment"
	"github.com/oqtopus-team/deutsch-jozsa-engine/log"
	"github.com/oqtopus-team/deutsch-jozsa-engine/oracle"
	"github.com/oqtopus-team/deutsch-jozsa-engine/scheduler"

	"go.uber.org/dig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	rotate "github.com/lestrrat-go/file-rotatelogs"
)

var versionByBuildFlag string
var parser *flags.Parser
var engine *Engine

func init() {
	if err := envordot.Load(false, ".env"); err != nil {
		fmt.Printf("Not found \".env\" file. Use only environment variables. Reason:%s\n", err.Error())
	} else {
		fmt.Println("Found \".env\" file. Environment variables are preferred, " +
			"but non-conflicting variables are those in the \".env\" file.")
	}
	engine = &Engine{}
	setParser(engine)
}

type Engine struct {
	DIContainerParameters *DIContainerParameters
	Conf                  *core.Conf
}

type DIContainerParameters struct {
	DBManager string `long:"db" description:"db" default:"memory" choice:"memory" env:"DJ_EDGE_DB_MANAGER_TYPE"`
	Simulator string `long:"simulator" description:"simulator-type" default:"local" choice:"local" env:"DJ_EDGE_SIMULATOR_TYPE"`
	Scheduler string `long:"scheduler" description:"scheduler-type" default:"normal" env:"DJ_EDGE_SCHEDULER_TYPE"`
}

func setParser(engine *Engine) {
	parser = flags.NewParser(engine, flags.Default)
	parser.ShortDescription = "deutsch-jozsa engine"
	parser.LongDescription = heredoc.Doc(`
		State-vector simulator for the Deutsch-Jozsa oracle-query protocol.
		Runs every registered oracle through the circuit, samples measurement
		shots and classifies each oracle as constant or balanced.`)
	parser.AddCommand("run", "run experiments", "run all registered oracles and print a summary", newRunCmd())
}

func parse() {
	if _, err := parser.Parse(); err != nil {
		code := 1
		if fe, ok := err.(*flags.Error); ok {
			if fe.Type == flags.ErrHelp {
				code = 0
			}
		}
		if code == 1 {
			fmt.Printf("failed to parse flags, because %s\n", err)
		}
		os.Exit(code)
	}
}

func (e *Engine) provideDIContainer() (c *dig.Container, err error) {
	c = dig.New()
	err = nil
	err = c.Provide(func() (core.SimulatorManager, error) {
		switch e.DIContainerParameters.Simulator {
		case "local":
			return &backend.LocalSimulator{}, nil
		default:
			return &backend.LocalSimulator{}, fmt.Errorf("%s is an unknown simulator", e.DIContainerParameters.Simulator)
		}
	})
	if err != nil {
		return &dig.Container{}, err
	}
	err = c.Provide(func() core.Scheduler { return &scheduler.NormalScheduler{} })
	if err != nil {
		return &dig.Container{}, err
	}
	err = c.Provide(func() (core.DBManager, error) {
		switch e.DIContainerParameters.DBManager {
		case "memory":
			return &core.MemoryDB{}, nil
		default:
			return &core.MemoryDB{}, fmt.Errorf("%s is an unknown DB", e.DIContainerParameters.DBManager)
		}
	})
	if err != nil {
		return &dig.Container{}, err
	}
	return
}

func (e *Engine) startCore(conf *core.Conf) error {
	core.NewJobManager(
		&experiment.ExperimentJob{},
	)
	err := core.GetSystemComponents().StartContainer()
	if err != nil {
		return err
	}
	core.SetInfo(conf)
	return nil
}

func zapLogger(conf *core.Conf) (*zap.Logger, error) {
	var encoder zapcore.Encoder
	if conf.DevMode {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		c := zap.NewProductionEncoderConfig()
		c.EncodeTime = zapcore.ISO8601TimeEncoder //Not use UnixTime
		c.TimeKey = "timestamp"
		encoder = zapcore.NewJSONEncoder(c)
	}
	var level zap.AtomicLevel
	switch conf.LogLevel {
	case "debug":
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	cores := []zapcore.Core{}
	if conf.EnableFileLog {
		rotater, err := makeRotator(conf.LogDir, conf.LogRotationMaxDays)
		if err != nil {
			return &zap.Logger{}, err
		}
		syncer := zapcore.AddSync(rotater)
		rotateCore := zapcore.NewCore(
			encoder,
			syncer,
			level)
		cores = append(cores, rotateCore)
	}
	if !conf.DisableStdoutLog {
		debugCore := zapcore.NewCore(
			encoder,
			zapcore.Lock(os.Stdout),
			level)
		cores = append(cores, debugCore)
	}
	zapCore := zapcore.NewTee(cores...)
	return zap.New(zapCore, zap.AddCaller()), nil
}

func makeRotator(dirPath string, rotationMaxDays int) (*rotate.RotateLogs, error) {
	info, err := os.Stat(dirPath)
	if err != nil {
		return &rotate.RotateLogs{}, fmt.Errorf("directory:%s is not found", dirPath)
	}
	if info.Mode().Perm()&(1<<uint(7)) == 0 {
		return &rotate.RotateLogs{}, fmt.Errorf("%s is not a writable directory", dirPath)
	}
	rotator, err := rotate.New(
		filepath.Join(dirPath, "djedge-%Y-%m-%d.log"),
		rotate.WithMaxAge(time.Duration(rotationMaxDays)*24*time.Hour),
		rotate.WithRotationTime(time.Hour))
	if err != nil {
		return &rotate.RotateLogs{}, err
	}
	return rotator, nil
}

func main() {
	parse()
}

type runCmd struct{}

func newRunCmd() *runCmd {
	return &runCmd{}
}

func (c *runCmd) Execute(args []string) error {
	logger := setZap(engine.Conf)
	defer logger.Sync()

	core.ResetSetting()
	registerSetting(engine.Conf)
	zap.L().Debug("Registered setting")
	if err := core.ParseSettingFromPath(engine.Conf.SettingPath); err != nil {
		zap.L().Warn(fmt.Sprintf("failed to parse settings, using defaults/reason:%s", err))
	}

	s := setupSystemComponents(engine.Conf)
	defer s.TearDown()

	rc, err := setupRunContext(engine.Conf)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to setup run context/reason:%s", err.Error()))
		return err
	}

	engine.startCore(engine.Conf)

	zap.L().Debug("Setting up run-group")
	if err := c.setupRunGroup(rc); err != nil {
		zap.L().Error(fmt.Sprintf("Failed to setup run group. Reason:%s", err))
		return err
	}

	if err := rc.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "execution error:%v\n", err)
		os.Exit(1)
	}

	return nil
}

func setupRunContext(conf *core.Conf) (*core.RunContext, error) {
	im := &core.ImplMaps{
		PeriodicTaskImplMap: core.PeriodicTaskImplMap{
			log.VersionLogTaskName: &log.VersionLogTaskImpl{},
			log.MetricsLogTaskName: &log.MetricsLogTaskImpl{},
		},
	}
	if _, err := os.Stat(conf.SettingPath); err != nil {
		zap.L().Warn(fmt.Sprintf("setting file %s is not found, running without periodic tasks", conf.SettingPath))
		return core.NewRunContext(), nil
	}
	return core.NewRunContextWithSettingPath(conf.SettingPath, im)
}

func (c *runCmd) setupRunGroup(rc *core.RunContext) error {
	rc.Add(
		run.SignalHandler(
			rc.Context,
			os.Interrupt))
	rc.Add(
		func() error {
			return runAllOracles(engine.Conf)
		},
		func(error) {},
	)
	core.SetRunContext(rc)
	return nil
}

// TODO : move to log package
func setZap(conf *core.Conf) *zap.Logger {
	logger, err := zapLogger(conf)
	if err != nil {
		fmt.Printf("Failed to setup logger. Reason:%s\n", err)
		panic(err)
	}
	zap.ReplaceGlobals(logger)
	zap.L().Info("Starting logger")
	zap.L().Info(fmt.Sprintf("DevMode is %t", conf.DevMode))
	return logger
}

func setupSystemComponents(conf *core.Conf) *core.SystemComponents {
	core.SetVersion(conf, versionByBuildFlag)
	zap.L().Debug(fmt.Sprintf("Providing DI Container with parameters %+v", engine.DIContainerParameters))

	container, err := engine.provideDIContainer()
	if err != nil {
		zap.L().Error(fmt.Sprintf("Failed to setting up DI-Container. Reason:%s", err.Error()))
		panic(err)
	}
	zap.L().Debug("Setting up System Components")
	s := core.NewSystemComponents(container)
	if err := s.Setup(conf); err != nil {
		zap.L().Error(fmt.Sprintf("Failed to setting up Container. Reason:%s", err.Error()))
		panic(err)
	}
	return s
}

func registerSetting(conf *core.Conf) {
	setting := experiment.NewExperimentSetting()
	if conf.ConstantThreshold > 0 {
		setting.ConstantThreshold = conf.ConstantThreshold
	}
	core.RegisterSetting(experiment.EXPERIMENT_SETTING_KEY, setting)
}

// runAllOracles submits one experiment job per registered oracle, waits
// for the results and prints the summary. Returning ends the run group.
func runAllOracles(conf *core.Conf) error {
	jc, err := core.NewJobContext()
	if err != nil {
		return err
	}
	jm := core.GetJobManager()
	defs := oracle.Registry(conf.InputQubits)

	printHeader(conf)

	jobIDs := make([]string, 0, len(defs))
	for _, def := range defs {
		param := &core.JobParam{
			JobID:      uuid.New().String(),
			OracleName: def.Name,
			QubitCount: conf.InputQubits,
			Shots:      conf.Shots,
			Seed:       conf.SamplerSeed,
			JobType:    core.EXPERIMENT_JOB,
		}
		job, err := jm.NewJobWithValidation(param, jc)
		if err != nil {
			zap.L().Error(fmt.Sprintf("failed to create a job for oracle %s. Reason:%s",
				def.Name, err.Error()))
			return err
		}
		job.JobData().Status = core.READY
		core.GetSystemComponents().Invoke(
			func(sc core.Scheduler) {
				sc.HandleJob(job)
			})
		jobIDs = append(jobIDs, param.JobID)
	}

	finished, err := waitForJobs(jobIDs, 60*time.Second)
	if err != nil {
		return err
	}
	printSummary(conf, defs, finished)
	return nil
}

func waitForJobs(jobIDs []string, timeout time.Duration) (map[string]*core.JobData, error) {
	finished := make(map[string]*core.JobData)
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		for _, id := range jobIDs {
			if _, ok := finished[id]; ok {
				continue
			}
			job := core.GetJob(id)
			if job == nil {
				continue
			}
			if job.IsFinished() {
				finished[id] = job.JobData().Clone()
			}
		}
		if len(finished) == len(jobIDs) {
			return finished, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("timed out waiting for %d of %d jobs",
				len(jobIDs)-len(finished), len(jobIDs))
		}
	}
	return finished, nil
}

func printHeader(conf *core.Conf) {
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println("Deutsch-Jozsa Algorithm Demonstration")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Number of input qubits: %d\n", conf.InputQubits)
	fmt.Printf("Measurement shots: %d\n", conf.Shots)
	fmt.Println()
}

func printSummary(conf *core.Conf, defs []oracle.Definition, finished map[string]*core.JobData) {
	byOracle := make(map[string]*core.JobData)
	for _, jd := range finished {
		byOracle[jd.OracleName] = jd
	}
	correct := 0
	for _, def := range defs {
		jd, ok := byOracle[def.Name]
		if !ok {
			continue
		}
		fmt.Println(strings.Repeat("-", 70))
		fmt.Printf("Oracle: %s (%s)\n", def.Name, def.Kind)
		fmt.Println(strings.Repeat("-", 70))
		if jd.Status != core.SUCCEEDED {
			fmt.Printf("Run failed: %s\n\n", jd.Result.Message)
			continue
		}
		fmt.Printf("Quantum algorithm result: %s\n", jd.Result.Verdict)
		fmt.Printf("Expected: %s\n", strings.ToUpper(jd.Result.DeclaredKind))
		fmt.Printf("Correct: %t\n", jd.Result.Correct)
		fmt.Println()
		printTopProbabilities(jd, 5)
		fmt.Printf("Classical queries needed: %d\n", jd.Result.ClassicalQueries)
		fmt.Printf("Quantum queries needed: %d\n", jd.Result.QuantumQueries)
		fmt.Printf("Speedup: %dx\n", jd.Result.ClassicalQueries/jd.Result.QuantumQueries)
		fmt.Println()
		if jd.Result.Correct {
			correct++
		}
	}
	printCircuitDiagram(conf.InputQubits)
	fmt.Println()
	fmt.Println("Summary:")
	fmt.Printf("  Total test cases: %d\n", len(defs))
	fmt.Printf("  Correctly identified: %d/%d\n", correct, len(defs))
}

func printTopProbabilities(jd *core.JobData, n int) {
	type entry struct {
		bits  string
		count uint32
	}
	entries := make([]entry, 0, len(jd.Result.Counts))
	for bits, count := range jd.Result.Counts {
		entries = append(entries, entry{bits: bits, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].bits < entries[j].bits
	})
	if len(entries) < n {
		n = len(entries)
	}
	fmt.Printf("Measurement probabilities (top %d):\n", n)
	for _, e := range entries[:n] {
		fmt.Printf("  |%s>: %.4f\n", e.bits, float64(e.count)/float64(jd.Shots))
	}
	fmt.Println()
}

func printCircuitDiagram(inputQubits int) {
	fmt.Println("Circuit structure:")
	fmt.Println(strings.Repeat("-", 50))
	fmt.Println("Input qubits:")
	for i := 0; i < inputQubits; i++ {
		fmt.Printf("  q[%d]: |0> --H--[Oracle]--H--[Measure]\n", i)
	}
	fmt.Println("Ancilla qubit:")
	fmt.Printf("  q[%d]: |1> --H--[Oracle]--[Measure]\n", inputQubits)
	fmt.Println(strings.Repeat("-", 50))
}
