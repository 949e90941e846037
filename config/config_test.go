/*
   Copyright 2026 The Axisgate Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.False(t, c.DebugMode())
	assert.False(t, c.Verbose())
	assert.Equal(t, 100, c.ClassifierWindowSize)
	assert.Equal(t, 1000, c.ValidatorWindowSize)
	assert.Equal(t, 10000, c.HistoryCap)
	assert.Equal(t, 5*time.Minute, c.SweepInterval)
	assert.Equal(t, time.Hour, c.StaleAfter)
	assert.Equal(t, 64, c.CorrelationCap)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faultline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
debug: true
history_cap: 500
sweep_interval: 30s
`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.True(t, c.DebugMode())
	assert.Equal(t, 500, c.HistoryCap)
	assert.Equal(t, 30*time.Second, c.SweepInterval)
	assert.Equal(t, 64, c.CorrelationCap, "unset keys keep defaults")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FAULTLINE_DEBUG", "true")
	t.Setenv("FAULTLINE_CORRELATION_CAP", "16")

	c, err := Load("")
	require.NoError(t, err)
	assert.True(t, c.DebugMode())
	assert.Equal(t, 16, c.CorrelationCap)
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faultline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history_cap: 0\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/faultline.yaml")
	assert.Error(t, err)
}
