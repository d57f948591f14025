package backend

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/oqtopus-team/deutsch-jozsa-engine/core"
	"github.com/oqtopus-team/deutsch-jozsa-engine/oracle"
	"github.com/oqtopus-team/deutsch-jozsa-engine/sampler"
	"github.com/oqtopus-team/deutsch-jozsa-engine/simulator"
	"go.uber.org/zap"
)

const LocalBackendName = "LocalStateVector"
const LocalProviderName = "LocalProvider"

// LocalSimulator runs experiment jobs on the in-process state-vector
// engine, filling in the job it is handed. DB updates stay with the
// scheduler.
type LocalSimulator struct {
	backendInfo *core.BackendInfo
	seed        int64
}

func (l *LocalSimulator) Setup(conf *core.Conf) error {
	zap.L().Debug("setting up local state-vector simulator")
	l.backendInfo = &core.BackendInfo{
		BackendName:  LocalBackendName,
		ProviderName: LocalProviderName,
		Type:         "simulator",
		Status:       core.Available,
		MaxQubits:    conf.MaxQubits,
		MaxShots:     conf.MaxShots,
	}
	l.seed = conf.SamplerSeed
	return nil
}

func (l *LocalSimulator) Send(j core.Job) error {
	jd := j.JobData()

	zap.L().Info(fmt.Sprintf("[Local] starting simulator execution of Job ID:%s", jd.ID))
	start := time.Now()
	if err := l.runImpl(jd); err != nil {
		msg := core.SetFailureWithError(j, err)
		zap.L().Info(msg)
	} else {
		jd.Status = core.SUCCEEDED
	}
	jd.Result.ExecutionTime = time.Since(start)
	zap.L().Info(fmt.Sprintf("[Local] finished simulator execution of Job ID:%s/status:%s",
		jd.ID, jd.Status))
	return nil
}

func (l *LocalSimulator) runImpl(jd *core.JobData) error {
	def, err := oracle.Lookup(jd.OracleName, jd.QubitCount)
	if err != nil {
		zap.L().Info(err.Error())
		return err
	}
	sv, err := simulator.RunCircuit(jd.QubitCount, def.Gates)
	if err != nil {
		return err
	}
	// rounding drift is reported, not fatal. The reference behavior does
	// not renormalize.
	if err := sv.CheckNorm(simulator.NormTolerance); err != nil {
		zap.L().Warn(fmt.Sprintf("job(%s): %s", jd.ID, err.Error()))
	}
	counts, err := sampler.Sample(sv, jd.QubitCount, jd.Shots, l.newSource(jd.Seed))
	if err != nil {
		return err
	}
	jd.Result.Counts = counts
	return nil
}

// newSource keeps random state task-local so per-oracle runs stay
// independent and reproducible from the job seed. Seed 0 means time-based.
func (l *LocalSimulator) newSource(jobSeed int64) *rand.Rand {
	seed := jobSeed
	if seed == 0 {
		seed = l.seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func (l *LocalSimulator) GetBackendInfo() *core.BackendInfo {
	return l.backendInfo
}
