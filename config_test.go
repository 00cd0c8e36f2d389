package blitzar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLibraryRejectsUnknownBackend(t *testing.T) {
	assert := assert.New(t)

	_, err := newLibrary(Config{Backend: Backend(99)})
	assert.ErrorIs(err, ErrInvalidConfig)
}

func TestNewLibraryAcceptsCPUAndGPU(t *testing.T) {
	assert := assert.New(t)

	cpuLib, err := newLibrary(Config{Backend: BackendCPU})
	assert.NoError(err)
	assert.Equal("cpu", cpuLib.engine.Name())

	gpuLib, err := newLibrary(Config{Backend: BackendGPU})
	assert.NoError(err)
	assert.Equal("gpu", gpuLib.engine.Name())
}

func TestRequireInitPanicsOnNilLibrary(t *testing.T) {
	assert := assert.New(t)
	assert.Panics(func() {
		requireInit(nil, "SomeOp")
	})
}

func TestInitIsSingleShot(t *testing.T) {
	assert := assert.New(t)

	globalMu.Lock()
	saved := globalLibrary
	globalLibrary = nil
	globalMu.Unlock()
	defer func() {
		globalMu.Lock()
		globalLibrary = saved
		globalMu.Unlock()
	}()

	_, err := Init(Config{Backend: BackendCPU})
	assert.NoError(err)

	_, err = Init(Config{Backend: BackendCPU})
	assert.ErrorIs(err, ErrAlreadyInitialized)
}

func TestGetGeneratorsRejectsNilOutputWithNonZeroCount(t *testing.T) {
	assert := assert.New(t)
	lib := newTestLibrary(t)

	err := lib.GetGenerators(nil, 0, 4)
	assert.ErrorIs(err, ErrNilOutput)
}

func TestGetGeneratorsZeroCountIsNoOp(t *testing.T) {
	assert := assert.New(t)
	lib := newTestLibrary(t)

	err := lib.GetGenerators(nil, 0, 0)
	assert.NoError(err)
}

func TestGetOneCommitRejectsNilOutput(t *testing.T) {
	assert := assert.New(t)
	lib := newTestLibrary(t)

	err := lib.GetOneCommit(nil, 3)
	assert.ErrorIs(err, ErrNilOutput)
}
