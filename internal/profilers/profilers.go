// Package profilers sets up the optional profiling of the binaries: an HTTP pprof server, a CPU
// profile and a heap profile written at exit.
//
// Linking it installs the flags -prof, -cpu_profile and -mem_profile.
package profilers

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagProfiler   = flag.Int("prof", -1, "If set, serves the pprof HTTP profiler at the given localhost port, and keeps the program alive at the end.")
	flagCPUProfile = flag.String("cpu_profile", "", "Write a CPU profile to `file`.")
	flagMemProfile = flag.String("mem_profile", "", "Write a heap profile to `file` at exit.")
)

// Profiler holds the state of the profilers started by Setup.
type Profiler struct {
	ctx     context.Context
	addr    string
	cpuFile *os.File
}

// Setup starts the profilers configured by the flags. It should be followed by a deferred call
// to Profiler.OnQuit. The context is used to stop waiting on the HTTP profiler.
func Setup(ctx context.Context) (*Profiler, error) {
	p := &Profiler{ctx: ctx}
	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			return nil, errors.Wrapf(err, "could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, errors.Wrapf(err, "could not start CPU profile")
		}
		p.cpuFile = f
	}
	if *flagProfiler >= 0 {
		p.addr = fmt.Sprintf("localhost:%d", *flagProfiler)
		fmt.Printf("Profiler serving on http://%s/debug/pprof\n", p.addr)
		fmt.Printf("- e.g.: $ go tool pprof http://%s/debug/pprof/heap\n", p.addr)
		go func() {
			klog.Fatal(http.ListenAndServe(p.addr, nil))
		}()
	}
	return p, nil
}

// OnQuit stops the CPU profile, writes the heap profile and, if the HTTP profiler is running,
// waits for the context to be cancelled (Ctrl+C) before returning.
func (p *Profiler) OnQuit() {
	if p == nil {
		return
	}
	// Don't freeze on panic.
	if err := recover(); err != nil {
		panic(err)
	}
	if p.cpuFile != nil {
		pprof.StopCPUProfile()
		if err := p.cpuFile.Close(); err != nil {
			klog.Errorf("failed to close CPU profile: %+v", err)
		}
		p.cpuFile = nil
	}
	if *flagMemProfile != "" {
		if err := writeHeapProfile(*flagMemProfile); err != nil {
			klog.Errorf("%+v", err)
		}
	}
	if p.addr == "" || p.ctx.Err() != nil {
		return
	}
	for range 10 {
		runtime.GC()
	}
	fmt.Printf("- Program finished: kept alive with profiler at http://%s/debug/pprof\n", p.addr)
	fmt.Printf("- Interrupt (Ctrl+C) to exit\n")
	<-p.ctx.Done()
}

func writeHeapProfile(filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return errors.Wrapf(err, "could not create heap profile")
	}
	defer func() { _ = f.Close() }()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return errors.Wrapf(err, "could not write heap profile to %q", filePath)
	}
	return nil
}
