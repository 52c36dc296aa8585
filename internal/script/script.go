// Package script assembles SLURM batch scripts from job parameters.
// Each block is built by its own function and the blocks are composed by
// ordered concatenation, so every block is independently testable.
package script

import (
	"fmt"
	"strings"

	"github.com/jdoppler/shell-utilities/internal/job"
	"github.com/jdoppler/shell-utilities/internal/utils"
)

// FileName is the script file written to the working directory on every
// run, overwriting any previous content.
const FileName = "SLURM_INPUT.sh"

// LauncherOptions holds the site-specific launcher settings used by the
// executable block.
type LauncherOptions struct {
	MpiCommand string // MPI launcher binary (e.g. "mpirun")
	PmiLibrary string // shared library for I_MPI_PMI_LIBRARY
}

// DefaultLauncherOptions returns the launcher settings used when no site
// configuration overrides them.
func DefaultLauncherOptions() LauncherOptions {
	return LauncherOptions{
		MpiCommand: "mpirun",
		PmiLibrary: "/cm/shared/apps/slurm/current/lib/libpmi.so",
	}
}

// Render produces the complete submission script for p. It is a pure
// function: identical inputs yield byte-identical output. Blocks are
// emitted in fixed order (directives, job array, output redirection,
// executable), separated by blank lines, with common leading whitespace
// stripped from the result.
func Render(p job.Parameters, opts LauncherOptions) string {
	blocks := []string{DirectiveBlock(p)}

	if p.HasJobArray() {
		blocks = append(blocks, JobArrayBlock(p.JobArrayDirs))
	}

	if p.OutputFile != "" {
		blocks = append(blocks, OutputBlock(p.OutputFile))
	}

	exe := ExecutableBlock(p, opts)
	if p.HasJobArray() && p.OutputFile == "" {
		// SLURM writes the per-array-task output into the submission
		// directory, not the task's working directory; the extended block
		// links it into place and compresses it afterwards.
		exe = ArrayOutputBlock(exe)
	}
	blocks = append(blocks, exe)

	return utils.Dedent(strings.Join(blocks, "\n\n") + "\n")
}

// DirectiveBlock emits the shebang and one #SBATCH directive per core
// job parameter. The time directive hardcodes a "00" hours field; the
// walltime is always interpreted as minutes.
func DirectiveBlock(p job.Parameters) string {
	var b strings.Builder
	b.WriteString("#!/bin/bash\n\n")
	fmt.Fprintf(&b, "#SBATCH --job-name=%s\n", p.Name)
	fmt.Fprintf(&b, "#SBATCH --time=00:%d:00\n", p.Walltime)
	fmt.Fprintf(&b, "#SBATCH --nodes %d\n", p.Nnodes)
	fmt.Fprintf(&b, "#SBATCH --ntasks-per-node=%d\n", p.Ntasks)
	fmt.Fprintf(&b, "#SBATCH --partition=%s\n", p.Partition)
	fmt.Fprintf(&b, "#SBATCH --qos=%s\n", p.Qos)
	fmt.Fprintf(&b, "#SBATCH --account=%s", p.Account)
	return b.String()
}

// JobArrayBlock emits the array-range directive for dirs and the shell
// lines that map the 1-based SLURM_ARRAY_TASK_ID onto the directory list
// and change into the selected directory.
func JobArrayBlock(dirs []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#SBATCH --array 1-%d\n\n", len(dirs))
	fmt.Fprintf(&b, "JOB_DIRS=(%s)\n", strings.Join(dirs, " "))
	b.WriteString("INDEX=$((${SLURM_ARRAY_TASK_ID} - 1))\n")
	b.WriteString("cd ${JOB_DIRS[${INDEX}]}")
	return b.String()
}

// OutputBlock redirects both stdout and stderr of the job to path.
func OutputBlock(path string) string {
	return fmt.Sprintf("#SBATCH --output=%s\n#SBATCH --error=%s", path, path)
}

// ExecutableBlock emits the timed invocation of the job executable,
// MPI-wrapped unless NoMpi is set. The processor pin list inherited from
// the submitting shell is always unset first.
func ExecutableBlock(p job.Parameters, opts LauncherOptions) string {
	var b strings.Builder
	b.WriteString("unset I_MPI_PIN_PROCESSOR_LIST\n")
	if p.SetMpiLibrary {
		fmt.Fprintf(&b, "export I_MPI_PMI_LIBRARY=%s\n", opts.PmiLibrary)
	}
	b.WriteString("time ")
	if !p.NoMpi {
		fmt.Fprintf(&b, "%s -np $SLURM_NTASKS ", opts.MpiCommand)
	}
	b.WriteString(p.Executable)
	return b.String()
}

// ArrayOutputBlock wraps an executable block for array jobs whose output
// was not redirected: the task's default output file is symlinked into
// the working directory while the job runs, then compressed and moved
// there. This assumes SLURM's default slurm-<jobid>_<taskid>.out naming.
func ArrayOutputBlock(executable string) string {
	var b strings.Builder
	b.WriteString("OUTPUT=$SLURM_SUBMIT_DIR/slurm-${SLURM_ARRAY_JOB_ID}_${SLURM_ARRAY_TASK_ID}.out\n")
	b.WriteString("ln -s $OUTPUT .\n\n")
	b.WriteString(executable)
	b.WriteString("\n\n")
	b.WriteString("unlink $(basename $OUTPUT)\n")
	b.WriteString("gzip $OUTPUT\n")
	b.WriteString("mv $OUTPUT.gz .")
	return b.String()
}
