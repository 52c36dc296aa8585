// Package scheduler invokes the SLURM submission command. The script is
// handed to sbatch on its standard input; sbatch's own output and exit
// status are not interpreted.
package scheduler

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// SlurmScheduler submits generated scripts by piping them to sbatch.
type SlurmScheduler struct {
	sbatchBin string
}

// NewSlurmScheduler creates a SLURM scheduler instance using sbatch from PATH.
func NewSlurmScheduler() (*SlurmScheduler, error) {
	return newSlurmSchedulerWithBinary("")
}

// NewSlurmSchedulerWithBinary creates a SLURM scheduler using an explicit
// sbatch path. An empty path falls back to PATH lookup.
func NewSlurmSchedulerWithBinary(sbatchBin string) (*SlurmScheduler, error) {
	return newSlurmSchedulerWithBinary(sbatchBin)
}

func newSlurmSchedulerWithBinary(sbatchBin string) (*SlurmScheduler, error) {
	binPath := sbatchBin
	if binPath == "" {
		var err error
		binPath, err = exec.LookPath("sbatch")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSchedulerNotFound, err)
		}
	} else {
		if absPath, err := filepath.Abs(binPath); err == nil {
			binPath = absPath
		}
		info, err := os.Stat(binPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSchedulerNotFound, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%w: %s is a directory", ErrSchedulerNotFound, binPath)
		}
	}

	return &SlurmScheduler{sbatchBin: binPath}, nil
}

// Binary returns the resolved sbatch path.
func (s *SlurmScheduler) Binary() string {
	return s.sbatchBin
}

// InJob reports whether we are already inside a SLURM job.
func (s *SlurmScheduler) InJob() bool {
	_, inJob := os.LookupEnv("SLURM_JOB_ID")
	return inJob
}

// Submit spawns sbatch with no arguments, writes script in full to its
// standard input, closes the stream and waits for the child to exit.
// Only the failure to spawn the process is an error; the child's exit
// status is waited for and then discarded. This fire-and-forget contract
// means failures of the workload manager itself are invisible here.
func (s *SlurmScheduler) Submit(jobName, script string) error {
	cmd := exec.Command(s.sbatchBin)
	cmd.Stdin = strings.NewReader(script)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return NewSubmissionError(jobName, err)
	}

	// Exit status intentionally discarded.
	_ = cmd.Wait()

	return nil
}
