//go:build unit
// +build unit

package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryDB(t *testing.T) {
	db := &MemoryDB{}
	assert.Nil(t, db.Setup(nil, &Conf{}))

	job := &testExperimentJob{jobData: &JobData{ID: "job-1", Status: READY}}
	assert.Nil(t, db.Insert(job))

	got, err := db.Get("job-1")
	assert.Nil(t, err)
	assert.Equal(t, "job-1", got.JobData().ID)

	_, err = db.Get("missing")
	assert.Error(t, err)

	job.jobData.Status = SUCCEEDED
	assert.Nil(t, db.Update(job))
	got, _ = db.Get("job-1")
	assert.Equal(t, SUCCEEDED, got.JobData().Status)

	assert.Nil(t, db.Delete("job-1"))
	assert.Error(t, db.Delete("job-1"))
}

func TestMemoryDBInnerJobIDSet(t *testing.T) {
	db := &MemoryDB{}
	assert.Nil(t, db.Setup(nil, &Conf{}))

	assert.False(t, db.ExistInInnerJobIDSet("job-1"))
	db.AddToInnerJobIDSet("job-1")
	assert.True(t, db.ExistInInnerJobIDSet("job-1"))
	db.RemoveFromInnerJobIDSet("job-1")
	assert.False(t, db.ExistInInnerJobIDSet("job-1"))
}

func TestMemoryDBConsumesDBChan(t *testing.T) {
	dbChan := make(DBChan)
	db := &MemoryDB{}
	assert.Nil(t, db.Setup(dbChan, &Conf{}))

	job := &testExperimentJob{jobData: &JobData{ID: "job-2", Status: RUNNING}}
	dbChan <- job

	assert.Eventually(t, func() bool {
		got, err := db.Get("job-2")
		return err == nil && got.JobData().Status == RUNNING
	}, time.Second, 10*time.Millisecond)
	close(dbChan)
}
