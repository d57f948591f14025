//go:build unit
// +build unit

package core

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// testExperimentJob stands in for the real experiment job, which lives
// outside this package.
type testExperimentJob struct {
	jobData    *JobData
	jobContext *JobContext
}

func (j *testExperimentJob) New(jd *JobData, jc *JobContext) Job {
	return &testExperimentJob{
		jobData:    jd,
		jobContext: jc,
	}
}

func (j *testExperimentJob) PreProcess()  { return }
func (j *testExperimentJob) Process()     { return }
func (j *testExperimentJob) PostProcess() { return }

func (j *testExperimentJob) IsFinished() bool {
	return j.JobData().Status == SUCCEEDED || j.JobData().Status == FAILED
}

func (j *testExperimentJob) JobData() *JobData {
	return j.jobData
}

func (j *testExperimentJob) JobType() string {
	return EXPERIMENT_JOB
}

func (j *testExperimentJob) JobContext() *JobContext {
	return j.jobContext
}

func (j *testExperimentJob) Clone() Job {
	return &testExperimentJob{
		jobData:    j.jobData.Clone(),
		jobContext: j.jobContext,
	}
}

func TestJobManager(t *testing.T) {
	s := SCWithUnimplementedContainer()
	defer s.TearDown()
	jm, err := NewJobManager(
		&testExperimentJob{},
	)
	assert.Nil(t, err)
	assert.NotNil(t, jm)
	as := jm.AcceptableJobTypes()
	assert.Equal(t, len(as), 1)
	assert.Equal(t, as[0], "experiment")

	err = jm.RegisterJob(&testExperimentJob{})
	assert.EqualError(t, err, "job:experiment is already registered")

	as = jm.AcceptableJobTypes()
	assert.Equal(t, len(as), 1)
	assert.Equal(t, as[0], "experiment")

	jc, err := NewJobContext()
	assert.Nil(t, err)

	job, err := jm.NewJobFromJobData(
		&JobData{ID: "test"},
		jc,
	)

	assert.Nil(t, err)
	assert.Equal(t, job.JobData().ID, "test")
}

func TestNewJob(t *testing.T) {
	s := SCWithDBContainer()
	defer s.TearDown()

	jm, err := NewJobManager()
	assert.Nil(t, err)
	assert.NotNil(t, jm)
	jm.RegisterJob(&testExperimentJob{})

	tests := []struct {
		name      string
		param     *JobParam
		wantError string
	}{
		{
			name: "valid param",
			param: &JobParam{
				JobID:      uuid.NewString(),
				OracleName: "constant-0",
				QubitCount: 3,
				Shots:      1000,
			},
		},
		{
			name: "empty jobID",
			param: &JobParam{
				OracleName: "constant-0",
				QubitCount: 3,
				Shots:      1000,
			},
			wantError: "jobID is empty",
		},
		{
			name: "empty oracle name",
			param: &JobParam{
				JobID:      uuid.NewString(),
				QubitCount: 3,
				Shots:      1000,
			},
			wantError: "oracle name is empty",
		},
		{
			name: "zero qubits",
			param: &JobParam{
				JobID:      uuid.NewString(),
				OracleName: "constant-0",
				QubitCount: 0,
				Shots:      1000,
			},
			wantError: "qubit count(0) must be greater than 0",
		},
		{
			name: "0 shots",
			param: &JobParam{
				JobID:      uuid.NewString(),
				OracleName: "constant-0",
				QubitCount: 3,
				Shots:      0,
			},
			wantError: "shots(0) must be greater than 0",
		},
		{
			name: "negative shots",
			param: &JobParam{
				JobID:      uuid.NewString(),
				OracleName: "constant-0",
				QubitCount: 3,
				Shots:      -1,
			},
			wantError: "shots(-1) must be greater than 0",
		},
		{
			name: "over max shots",
			param: &JobParam{
				JobID:      uuid.NewString(),
				OracleName: "constant-0",
				QubitCount: 3,
				Shots:      MockMaxShots + 1,
			},
			wantError: fmt.Sprintf(
				"shots(%d) is over the limit(%d)",
				MockMaxShots+1, MockMaxShots),
		},
		{
			name: "over max qubits with the ancilla",
			param: &JobParam{
				JobID:      uuid.NewString(),
				OracleName: "constant-0",
				QubitCount: MockMaxQubits,
				Shots:      1000,
			},
			wantError: fmt.Sprintf(
				"qubit count(%d) plus the ancilla is over the limit(%d)",
				MockMaxQubits, MockMaxQubits),
		},
	}

	jc, err := NewJobContext()
	assert.Nil(t, err)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, err := jm.NewJobWithValidation(tt.param, jc)
			if tt.wantError == "" {
				assert.Nil(t, err)
				assert.Equal(t, tt.param.JobID, job.JobData().ID)
				assert.Equal(t, EXPERIMENT_JOB, job.JobType())
			} else {
				assert.Nil(t, job)
				assert.EqualError(t, err, tt.wantError)
			}
		})
	}
}

func TestNewJobFromJobDataUnknownType(t *testing.T) {
	s := SCWithUnimplementedContainer()
	defer s.TearDown()
	jm, err := NewJobManager(&testExperimentJob{})
	assert.Nil(t, err)

	jc, err := NewJobContext()
	assert.Nil(t, err)

	_, err = jm.NewJobFromJobData(&JobData{ID: "x", JobType: "estimation"}, jc)
	assert.EqualError(t, err, "job type estimation is not registered")
}

func TestSetFailureWithError(t *testing.T) {
	jd := NewJobData()
	msg := SetFailureWithErrorToJobData(jd, fmt.Errorf("boom"))
	assert.Equal(t, "boom", msg)
	assert.Equal(t, FAILED, jd.Status)
	assert.Equal(t, "boom", jd.Result.Message)
}
