package ydotool

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"waykit/internal/telemetry"
	"waykit/lib/osutil"

	"github.com/shirou/gopsutil/v4/process"
)

const (
	report_daemon_restart = "daemon.restart"
)

// ProcessTable finds and stops running processes by name.
//
// note: fault injection point
type ProcessTable interface {
	Find(ctx context.Context, name string) ([]int32, error)
	Terminate(ctx context.Context, pid int32) error
}

// SystemProcesses is the ProcessTable of the host, backed by gopsutil. Find
// matches the short process name, not the executable path.
type SystemProcesses struct{}

func (SystemProcesses) Find(ctx context.Context, name string) ([]int32, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	var pids []int32
	for _, p := range procs {
		pname, err := p.NameWithContext(ctx)
		if err != nil {
			// the process may have exited between listing and reading
			continue
		}
		if pname == name {
			pids = append(pids, p.Pid)
		}
	}
	return pids, nil
}

func (SystemProcesses) Terminate(ctx context.Context, pid int32) error {
	p, err := process.NewProcessWithContext(ctx, pid)
	if errors.Is(err, process.ErrorProcessNotRunning) {
		return nil
	}
	if err != nil {
		return err
	}
	return p.TerminateWithContext(ctx)
}

// Daemon manages the lifetime of the ydotoold process.
type Daemon struct {
	bin    string
	// name is the process name of bin, bin may be a path.
	name   string
	procs  ProcessTable
	runner osutil.Runner
	tel    telemetry.API
}

// NewDaemon creates a Daemon, `bin` defaults to "ydotoold" when empty.
func NewDaemon(bin string, procs ProcessTable, runner osutil.Runner, tel telemetry.API) Daemon {
	if bin == "" {
		bin = "ydotoold"
	}
	return Daemon{
		bin:    bin,
		name:   filepath.Base(bin),
		procs:  procs,
		runner: runner,
		tel:    telemetry.NewScopedAPI("ydotool", tel),
	}
}

// Running returns true if at least one daemon process exists.
func (d Daemon) Running(ctx context.Context) (bool, error) {
	pids, err := d.procs.Find(ctx, d.name)
	if err != nil {
		return false, err
	}
	return len(pids) > 0, nil
}

// Restart stops every running daemon and starts a fresh detached one.
// Failing to stop an old daemon is only a warning.
func (d Daemon) Restart(ctx context.Context) error {
	pids, err := d.procs.Find(ctx, d.name)
	if err != nil {
		d.tel.ReportWarning(report_daemon_restart, fmt.Errorf("list processes: %w", err))
	}
	for _, pid := range pids {
		err := d.procs.Terminate(ctx, pid)
		if err != nil {
			d.tel.ReportWarning(report_daemon_restart, fmt.Errorf("terminate %d: %w", pid, err))
		}
	}
	d.tel.ReportDebug("stopped existing daemons", len(pids))

	err = d.runner.Start(d.bin)
	if err != nil {
		d.tel.ReportBroken(report_daemon_restart, err)
		return err
	}
	return nil
}
