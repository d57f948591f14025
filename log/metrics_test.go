//go:build unit
// +build unit

package log

import (
	"testing"

	"github.com/oqtopus-team/deutsch-jozsa-engine/core"
	"github.com/stretchr/testify/assert"
)

func TestMetricsBackendStatus(t *testing.T) {
	s := core.SCWithUnimplementedContainer()
	defer s.TearDown()

	m := &MetricsLogTaskImpl{sc: s}
	assert.Equal(t, core.Available.String(), m.backendStatus())
}

func TestMetricsSetParams(t *testing.T) {
	m := &MetricsLogTaskImpl{}
	assert.Nil(t, m.SetParams(nil))

	assert.Nil(t, m.SetParams(map[string]interface{}{"file_dir": "/tmp"}))
	assert.Equal(t, "/tmp", m.FileDir)

	assert.Error(t, m.SetParams(42))
}
