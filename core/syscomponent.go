package core

import (
	"fmt"

	"go.uber.org/dig"
	"go.uber.org/zap"
)

var systemComponents *SystemComponents

type DBChan chan Job

type Channels struct {
	DBChan
	// when more channel is needed, add here
	// would use map[string]chan Job
}

func NewChannels() *Channels {
	return &Channels{
		DBChan: make(DBChan),
	}
}

func (c *Channels) Close() {
	close(c.DBChan)
}

func (c *Channels) Check() error {
	if c.DBChan == nil {
		return fmt.Errorf("DBChan is nil")
	}
	return nil
}

type BackendInfo struct {
	BackendName  string        `json:"backend_name"`
	ProviderName string        `json:"provider_name"`
	Type         string        `json:"type"`
	Status       BackendStatus `json:"status"`
	MaxQubits    int           `json:"max_qubits"`
	MaxShots     int           `json:"max_shots"`
}

type BackendStatus int

const (
	Available BackendStatus = iota
	Unavailable
)

func (bs BackendStatus) String() string {
	switch bs {
	case Available:
		return "Available"
	case Unavailable:
		return "Unavailable"
	default:
		return "Unknown"
	}
}

// SimulatorManager executes one experiment job on a state-vector backend.
type SimulatorManager interface {
	Setup(*Conf) error
	Send(Job) error
	GetBackendInfo() *BackendInfo
}

type Scheduler interface {
	Setup(*Conf) error
	Start() error
	HandleJob(Job)
	// Queue Data Access
	GetCurrentQueueSize() int
	IsOverRefillThreshold() bool
}

type DBManager interface {
	Setup(DBChan, *Conf) error
	Insert(Job) error
	Get(string) (Job, error)
	Update(Job) error
	Delete(string) error

	AddToInnerJobIDSet(string)
	RemoveFromInnerJobIDSet(string)
	ExistInInnerJobIDSet(string) bool
}

type SystemComponents struct {
	*dig.Container
	*Channels
}

func NewSystemComponents(con *dig.Container) *SystemComponents {
	return &SystemComponents{
		con,
		NewChannels(),
	}
}

func GetSystemComponents() *SystemComponents {
	return systemComponents
}

func (s *SystemComponents) Setup(conf *Conf) error {
	dbChan := s.DBChan

	zap.L().Debug("Setting up scheduler")
	var err error
	err = s.Invoke(
		func(sc Scheduler) error {
			return sc.Setup(conf)
		})
	if err != nil {
		return err
	}

	zap.L().Debug("Setting up DB")
	err = s.Invoke(
		func(d DBManager) error {
			return d.Setup(dbChan, conf)
		})
	if err != nil {
		return err
	}

	zap.L().Debug("Setting up simulator backend")
	err = s.Invoke(func(m SimulatorManager) error {
		return m.Setup(conf)
	})
	if err != nil {
		return err
	}
	systemComponents = s
	return nil
}

func (s *SystemComponents) TearDown() {
	s.Channels.Close()
}

func (s *SystemComponents) StartContainer() error {
	return s.Container.Invoke(
		func(sc Scheduler) error {
			return sc.Start()
		})
}

func (s *SystemComponents) GetBackendInfo() *BackendInfo {
	var backendInfo *BackendInfo
	s.Invoke(
		func(m SimulatorManager) error {
			backendInfo = m.GetBackendInfo()
			return nil
		})
	return backendInfo
}

func (s *SystemComponents) GetCurrentQueueSize() int {
	var size int
	s.Invoke(
		func(sc Scheduler) {
			size = sc.GetCurrentQueueSize()
		})
	return size
}

func (s *SystemComponents) IsQueueOverRefillThreshold() bool {
	var over bool
	s.Invoke(
		func(sc Scheduler) {
			over = sc.IsOverRefillThreshold()
		})
	return over
}
