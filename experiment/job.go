package experiment

import (
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/oqtopus-team/deutsch-jozsa-engine/classifier"
	"github.com/oqtopus-team/deutsch-jozsa-engine/core"
	"github.com/oqtopus-team/deutsch-jozsa-engine/oracle"
	"go.uber.org/zap"
)

const EXPERIMENT_SETTING_KEY = "experiment"

type ExperimentSetting struct {
	ConstantThreshold float64 `toml:"constant_threshold"`
}

func NewExperimentSetting() ExperimentSetting {
	return ExperimentSetting{
		ConstantThreshold: classifier.DefaultThreshold,
	}
}

type ExperimentJob struct {
	jobData    *core.JobData
	jobContext *core.JobContext
	oracleKind oracle.Kind
	classified bool
}

func (j *ExperimentJob) New(jd *core.JobData, jc *core.JobContext) core.Job {
	return &ExperimentJob{
		jobData:    jd,
		jobContext: jc,
	}
}

func (j *ExperimentJob) PreProcess() {
	if err := j.preProcessImpl(); err != nil {
		zap.L().Error(fmt.Sprintf("failed to pre-process a job(%s). Reason:%s",
			j.JobData().ID, err.Error()))
		core.SetFailureWithError(j, err)
		return
	}
	return
}

func (j *ExperimentJob) preProcessImpl() (err error) {
	err = nil
	jd := j.JobData()
	container := core.GetSystemComponents().Container
	// TODO refactor this part
	// make jobID pool in syscomponent
	err = container.Invoke(
		func(d core.DBManager) error {
			if d.ExistInInnerJobIDSet(jd.ID) {
				return core.ErrorJobIDConflict
			}
			return nil
		})
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to check the existence of a job(%s). Reason:%s",
			jd.ID, err.Error()))
		return
	}

	def, err := oracle.Lookup(jd.OracleName, jd.QubitCount)
	if err != nil {
		zap.L().Info(fmt.Sprintf("failed to look up the oracle of a job(%s). Reason:%s",
			jd.ID, err.Error()))
		return
	}
	j.oracleKind = def.Kind
	jd.Result.DeclaredKind = def.Kind.String()

	_ = container.Invoke(
		func(d core.DBManager) error {
			d.AddToInnerJobIDSet(jd.ID)
			return nil
		})
	return
}

func (j *ExperimentJob) Process() {
	c := core.GetSystemComponents().Container
	err := c.Invoke(
		func(m core.SimulatorManager) error {
			return m.Send(j)
		})
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to send a job(%s) to the simulator. Reason:%s",
			j.JobData().ID, err.Error()))
		j.JobData().Status = core.FAILED
	}
	zap.L().Debug(fmt.Sprintf("finished to process a job(%s)/status:%s", j.JobData().ID, j.JobData().Status))
}

func (j *ExperimentJob) PostProcess() {
	jd := j.JobData()
	if jd.Status != core.SUCCEEDED {
		zap.L().Debug(fmt.Sprintf("skip classification of a job(%s)/status:%s", jd.ID, jd.Status))
		j.classified = true
		return
	}
	threshold := thresholdFromSetting()
	verdict := classifier.Classify(jd.Result.Counts, jd.QubitCount, threshold)
	jd.Result.Verdict = verdict
	jd.Result.Correct = verdictMatchesKind(verdict, j.oracleKind)
	jd.Result.ClassicalQueries = ClassicalQueries(j.oracleKind, jd.QubitCount)
	jd.Ended = strfmt.DateTime(time.Now())
	j.classified = true
	zap.L().Debug(fmt.Sprintf("classified job(%s) as %s/declared:%s/correct:%t",
		jd.ID, verdict, jd.Result.DeclaredKind, jd.Result.Correct))
	return
}

func (j *ExperimentJob) IsFinished() bool {
	if j.JobData().Status == core.FAILED {
		return true
	}
	return j.JobData().Status == core.SUCCEEDED && j.classified
}

func (j *ExperimentJob) JobData() *core.JobData {
	return j.jobData
}

func (j *ExperimentJob) JobType() string {
	return core.EXPERIMENT_JOB
}

func (j *ExperimentJob) JobContext() *core.JobContext {
	return j.jobContext
}

func (j *ExperimentJob) Clone() core.Job {
	cloned := &ExperimentJob{
		jobData:    j.jobData.Clone(),
		jobContext: j.jobContext,
		oracleKind: j.oracleKind,
		classified: j.classified,
	}
	return cloned
}

func verdictMatchesKind(v core.Verdict, k oracle.Kind) bool {
	switch v {
	case core.CONSTANT:
		return k == oracle.Constant
	case core.BALANCED:
		return k == oracle.Balanced
	default:
		return false
	}
}

// ClassicalQueries is the worst-case number of deterministic classical
// oracle queries: 2 for a constant function, 2^(n-1)+1 for a balanced one.
func ClassicalQueries(k oracle.Kind, inputQubits int) int {
	if k == oracle.Constant {
		return 2
	}
	return 1<<(inputQubits-1) + 1
}

func thresholdFromSetting() float64 {
	val, ok := core.GetComponentSetting(EXPERIMENT_SETTING_KEY)
	if !ok {
		return classifier.DefaultThreshold
	}
	switch s := val.(type) {
	case ExperimentSetting:
		return s.ConstantThreshold
	case map[string]interface{}:
		if t, ok := s["constant_threshold"].(float64); ok {
			return t
		}
	}
	zap.L().Debug(fmt.Sprintf("no usable experiment setting, falling back to default threshold/val:%v", val))
	return classifier.DefaultThreshold
}
