package core

import (
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
	jsoniter "github.com/json-iterator/go"
	"github.com/mohae/deepcopy"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"
)

type Status int // Status of the run as seen by the caller, not an internal scheduler state.
type Counts map[string]uint32

var jsonIter = jsoniter.ConfigCompatibleWithStandardLibrary

func (c Counts) String() string {
	st, err := jsonIter.Marshal(c)
	if err != nil {
		zap.L().Error("Failed to marshal core.Counts")
		return ""
	}
	return string(st)
}

// TotalShots is the number of samples recorded in the counts.
func (c Counts) TotalShots() uint32 {
	var total uint32
	for _, v := range c {
		total += v
	}
	return total
}

// Probability of a bit pattern. A missing key counts as zero.
func (c Counts) Probability(key string) float64 {
	total := c.TotalShots()
	if total == 0 {
		return 0
	}
	return float64(c[key]) / float64(total)
}

func ToStatus(s string) (Status, error) {
	switch s {
	case "submitted":
		return SUBMITTED, nil
	case "ready":
		return READY, nil
	case "running":
		return RUNNING, nil
	case "succeeded":
		return SUCCEEDED, nil
	case "failed":
		return FAILED, nil
	case "cancelled":
		return CANCELLED, nil
	default:
		return 0, fmt.Errorf("unknown status: %s", s)
	}
}

const (
	SUBMITTED Status = iota // In the submission queue, not yet handled.
	READY                   // Has never been processed on the simulator. All jobs start here.
	RUNNING                 // Being processed on the simulator backend.
	SUCCEEDED               // Finished successfully.
	FAILED                  // Finished with failure.
	CANCELLED               // Finished with cancellation.
)

func (s Status) String() string {
	switch s {
	case SUBMITTED:
		return "submitted"
	case READY:
		return "ready"
	case RUNNING:
		return "running"
	case SUCCEEDED:
		return "succeeded"
	case FAILED:
		return "failed"
	case CANCELLED:
		return "cancelled"
	default:
		return "unknown"
	}
}

type Verdict int

const (
	UNDECIDED Verdict = iota
	CONSTANT
	BALANCED
)

func (v Verdict) String() string {
	switch v {
	case CONSTANT:
		return "CONSTANT"
	case BALANCED:
		return "BALANCED"
	default:
		return "UNDECIDED"
	}
}

func (v Verdict) MarshalJSON() ([]byte, error) {
	return []byte(`"` + v.String() + `"`), nil
}

type Result struct {
	Counts           Counts        `json:"counts"`
	Verdict          Verdict       `json:"verdict"`
	DeclaredKind     string        `json:"declared_kind"`
	Correct          bool          `json:"correct"`
	ClassicalQueries int           `json:"classical_queries"`
	QuantumQueries   int           `json:"quantum_queries"`
	Message          string        `json:"message"`
	ExecutionTime    time.Duration `json:"execution_time"`
}

func cloneCounts(counts Counts) Counts {
	clone := make(Counts)
	for k, v := range counts {
		clone[k] = v
	}
	return clone
}

type JobData struct {
	ID         string
	Status     Status
	OracleName string
	QubitCount int // input qubits, the ancilla is not included
	Shots      int
	Seed       int64
	Result     *Result
	JobType    string
	Created    strfmt.DateTime
	Ended      strfmt.DateTime
	Info       string
}

func (jd *JobData) Clone() *JobData {
	c := deepcopy.Copy(jd).(*JobData)
	c.Created = *jd.Created.DeepCopy()
	c.Ended = *jd.Ended.DeepCopy()
	return c
}

func NewResult() *Result {
	return &Result{
		Counts:         make(Counts),
		QuantumQueries: 1, // one oracle query per circuit run
	}
}

func NewJobData() *JobData {
	return &JobData{
		Result:  NewResult(),
		Created: strfmt.DateTime(time.Now()),
	}
}

func CloneJobData(i *JobData) *JobData {
	o := NewJobData()
	o.ID = i.ID
	o.Status = i.Status
	o.OracleName = i.OracleName
	o.QubitCount = i.QubitCount
	o.Shots = i.Shots
	o.Seed = i.Seed
	o.Result.Counts = cloneCounts(i.Result.Counts)
	o.Result.Verdict = i.Result.Verdict
	o.Result.DeclaredKind = i.Result.DeclaredKind
	o.Result.Correct = i.Result.Correct
	o.Result.ClassicalQueries = i.Result.ClassicalQueries
	o.Result.QuantumQueries = i.Result.QuantumQueries
	o.Result.Message = i.Result.Message
	o.Result.ExecutionTime = i.Result.ExecutionTime
	o.JobType = i.JobType
	o.Created = i.Created
	o.Ended = i.Ended
	o.Info = i.Info
	return o
}

func (r *Result) ToString() string {
	st, err := jsonIter.Marshal(r)
	if err != nil {
		zap.L().Error("Failed to marshal core.Result")
		return ""
	}
	st = pretty.Pretty(st)
	return string(st)
}
