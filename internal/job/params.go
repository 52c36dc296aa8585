// Package job holds the parameter record describing a single SLURM
// submission and the partition/QOS override rules applied to it.
package job

import (
	"fmt"
	"strings"

	"github.com/jdoppler/shell-utilities/internal/utils"
)

// Institute-node override values. When UseInstituteNodes is set these
// replace the partition, QOS and account unconditionally.
const (
	InstitutePartition = "mem_0256"
	InstituteQos       = "p70623_0256"
	InstituteAccount   = "p70623"
)

// DevQos is the development QOS for short runtimes (< 10 minutes).
const DevQos = "devel_0128"

// Parameters describes one batch job. It is filled from command-line
// flags, passed through ApplyOverrides exactly once, and treated as
// read-only afterwards.
type Parameters struct {
	Walltime      int // minutes
	Name          string
	Nnodes        int
	Ntasks        int // tasks per node
	Executable    string
	NoMpi         bool
	SetMpiLibrary bool
	JobArrayDirs  []string // one working directory per array index
	OutputFile    string
	Silent        bool
	DryRun        bool
	Partition     string
	Qos           string
	Account       string

	UseInstituteNodes bool
	UseDevQueue       bool
}

// ApplyOverrides mutates the record according to the queue selection
// flags. The institute override runs first and replaces partition, QOS
// and account wholesale; the dev-queue override runs second and replaces
// the QOS only, so it wins over the institute QOS.
func (p *Parameters) ApplyOverrides() {
	if p.UseInstituteNodes {
		p.Partition = InstitutePartition
		p.Qos = InstituteQos
		p.Account = InstituteAccount
	}
	if p.UseDevQueue {
		p.Qos = DevQos
	}
}

// HasJobArray reports whether the job is an array job.
func (p *Parameters) HasJobArray() bool {
	return len(p.JobArrayDirs) > 0
}

// Summary renders the human-readable options block printed before
// submission (suppressed by --silent).
func (p *Parameters) Summary() string {
	jobArray := "none"
	if p.HasJobArray() {
		jobArray = strings.Join(p.JobArrayDirs, " ")
	}
	outputFile := "none"
	if p.OutputFile != "" {
		outputFile = p.OutputFile
	}

	return utils.Dedent(fmt.Sprintf(`
		Options:

		    Job name:               %s
		    Maximum job runtime:    %d minutes
		    Number of nodes:        %d
		    Executable file:        %s
		    Job array directories:  %s
		    Output files:           %s
		    Partition:              %s
		    Quality of Service:     %s
		    Account:                %s
	`, p.Name, p.Walltime, p.Nnodes, p.Executable, jobArray, outputFile,
		p.Partition, p.Qos, p.Account))
}
