package blitzar

import (
	"sync"

	"github.com/Adamphu/blitzar/internal/backend"
)

// Backend selects the MSM execution strategy. The values match the C
// ABI's sxt_config.backend field (spec.md §6).
type Backend int

const (
	// BackendCPU dispatches multi-scalar multiplication across a
	// goroutine worker pool.
	BackendCPU Backend = 1

	// BackendGPU dispatches multi-scalar multiplication across
	// simulated GPU streams. See internal/backend/gpu.go for why this
	// is a software simulation rather than real hardware dispatch.
	BackendGPU Backend = 2
)

// Config configures a Library at Init. There is no CLI or env parsing
// layer in scope for this module (spec.md §1); Config is meant to be
// populated programmatically by whatever harness embeds this library.
type Config struct {
	// Backend selects the MSM execution strategy. Required.
	Backend Backend

	// NumPrecomputedGenerators is the size of the generator window
	// computed eagerly at Init; generators beyond this window are
	// still correct, just computed on demand (spec.md §4.1).
	NumPrecomputedGenerators uint64

	// CPUWorkers bounds the CPU backend's worker pool. Zero means
	// runtime.NumCPU().
	CPUWorkers int

	// GPUStreamSize bounds how many jobs the simulated GPU backend
	// groups into one goroutine "stream". Zero means a built-in
	// default.
	GPUStreamSize int
}

// Library is the immutable handle produced by a successful Init. Every
// exported entry point takes a *Library explicitly, per spec.md §9's
// guidance for languages that would rather not carry ambient mutable
// global state. Init also records the first successfully initialized
// Library in a package-level variable, which is what makes later Init
// calls fail; no package-level entry point reads that variable.
type Library struct {
	engine     backend.Engine
	generators *generatorOracle
}

var (
	globalMu      sync.Mutex
	globalLibrary *Library
)

// Init constructs a Library from config. It is single-shot per process:
// a second call to Init returns ErrAlreadyInitialized.
// Calling Init concurrently with any other entry point is undefined,
// per spec.md §5.
func Init(config Config) (*Library, error) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalLibrary != nil {
		return nil, ErrAlreadyInitialized
	}

	lib, err := newLibrary(config)
	if err != nil {
		return nil, err
	}

	globalLibrary = lib
	return lib, nil
}

// newLibrary builds a Library without touching the package-level
// singleton; used directly by tests that want independent, isolated
// Library instances rather than the process-wide singleton.
func newLibrary(config Config) (*Library, error) {
	var engine backend.Engine
	switch config.Backend {
	case BackendCPU:
		engine = backend.NewCPU(config.CPUWorkers)
	case BackendGPU:
		engine = backend.NewGPU(config.GPUStreamSize)
	default:
		return nil, ErrInvalidConfig
	}

	return &Library{
		engine:     engine,
		generators: newGeneratorOracle(config.NumPrecomputedGenerators),
	}, nil
}

// requireInit panics (a programmer error, per spec.md §7 class 1) when
// called on a nil Library, matching the C ABI's "calls before a
// successful init are fatal" rule.
func requireInit(lib *Library, op string) {
	if lib == nil {
		fail(op, "library not initialized")
	}
}
