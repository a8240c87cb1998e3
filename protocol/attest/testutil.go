package attest

import (
	"sync"
	"testing"
)

var (
	testEngineOnce sync.Once
	testEngine     *Groth16
	testEngineErr  error
)

// StaticTestEngine returns a Groth16 engine shared by all _tests_ of
// the process, so that the setup only runs once.
func StaticTestEngine(t testing.TB) *Groth16 {
	testEngineOnce.Do(func() {
		testEngine, testEngineErr = NewGroth16()
	})
	if testEngineErr != nil {
		t.Fatal(testEngineErr)
	}
	return testEngine
}
