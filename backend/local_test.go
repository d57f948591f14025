//go:build unit
// +build unit

package backend

import (
	"testing"

	"github.com/google/uuid"
	"github.com/oqtopus-team/deutsch-jozsa-engine/core"
	"github.com/oqtopus-team/deutsch-jozsa-engine/oracle"
	"github.com/stretchr/testify/assert"
)

type localTestJob struct {
	jobData    *core.JobData
	jobContext *core.JobContext
}

func (j *localTestJob) New(jd *core.JobData, jc *core.JobContext) core.Job {
	return &localTestJob{jobData: jd, jobContext: jc}
}

func (j *localTestJob) PreProcess()  { return }
func (j *localTestJob) Process()     { return }
func (j *localTestJob) PostProcess() { return }

func (j *localTestJob) IsFinished() bool {
	return j.jobData.Status == core.SUCCEEDED || j.jobData.Status == core.FAILED
}

func (j *localTestJob) JobData() *core.JobData       { return j.jobData }
func (j *localTestJob) JobType() string              { return core.EXPERIMENT_JOB }
func (j *localTestJob) JobContext() *core.JobContext { return j.jobContext }

func (j *localTestJob) Clone() core.Job {
	return &localTestJob{jobData: j.jobData.Clone(), jobContext: j.jobContext}
}

func newLocalSimulator(t *testing.T, seed int64) *LocalSimulator {
	l := &LocalSimulator{}
	conf := &core.Conf{
		MaxQubits:   20,
		MaxShots:    100000,
		SamplerSeed: seed,
	}
	assert.Nil(t, l.Setup(conf))
	return l
}

func newLocalTestJob(oracleName string, shots int) *localTestJob {
	jd := core.NewJobData()
	jd.ID = uuid.NewString()
	jd.OracleName = oracleName
	jd.QubitCount = 3
	jd.Shots = shots
	jd.Status = core.RUNNING
	return &localTestJob{jobData: jd}
}

func TestLocalSimulatorSetup(t *testing.T) {
	l := newLocalSimulator(t, 0)
	bi := l.GetBackendInfo()
	assert.Equal(t, LocalBackendName, bi.BackendName)
	assert.Equal(t, "simulator", bi.Type)
	assert.Equal(t, core.Available, bi.Status)
	assert.Equal(t, 20, bi.MaxQubits)
	assert.Equal(t, 100000, bi.MaxShots)
}

func TestLocalSimulatorSend(t *testing.T) {
	tests := []struct {
		name       string
		oracleName string
		wantKey    string
	}{
		{
			name:       "constant zero concentrates on all-zero",
			oracleName: oracle.Constant0Name,
			wantKey:    "000",
		},
		{
			name:       "parity concentrates on all-one",
			oracleName: oracle.BalancedParityName,
			wantKey:    "111",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLocalSimulator(t, 7)
			job := newLocalTestJob(tt.oracleName, 500)
			assert.Nil(t, l.Send(job))
			jd := job.JobData()
			assert.Equal(t, core.SUCCEEDED, jd.Status)
			assert.Equal(t, uint32(500), jd.Result.Counts.TotalShots())
			assert.Equal(t, uint32(500), jd.Result.Counts[tt.wantKey])
			assert.Greater(t, int64(jd.Result.ExecutionTime), int64(0))
		})
	}
}

func TestLocalSimulatorSendUnknownOracle(t *testing.T) {
	l := newLocalSimulator(t, 7)
	job := newLocalTestJob("balanced-majority", 500)
	assert.Nil(t, l.Send(job))
	jd := job.JobData()
	assert.Equal(t, core.FAILED, jd.Status)
	assert.Contains(t, jd.Result.Message, "unknown oracle")
}

func TestLocalSimulatorSendZeroShots(t *testing.T) {
	l := newLocalSimulator(t, 7)
	job := newLocalTestJob(oracle.Constant1Name, 0)
	assert.Nil(t, l.Send(job))
	jd := job.JobData()
	assert.Equal(t, core.FAILED, jd.Status)
	assert.Contains(t, jd.Result.Message, "shot count must be at least 1")
}

func TestLocalSimulatorSeedPrecedence(t *testing.T) {
	l := newLocalSimulator(t, 5)

	jobSeeded := l.newSource(11)
	confSeeded := l.newSource(0)
	assert.Equal(t, l.newSource(11).Float64(), jobSeeded.Float64())
	assert.Equal(t, l.newSource(0).Float64(), confSeeded.Float64())

	// with no seed anywhere the source falls back to the clock
	unseeded := newLocalSimulator(t, 0)
	assert.NotNil(t, unseeded.newSource(0))
}
