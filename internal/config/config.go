package config

const VERSION = "1.2.0"

// Config holds site-level defaults for job submission. Values come from
// LoadDefaults first, then the config file / environment via viper, then
// command-line flags (highest priority, applied by the cmd layer).
type Config struct {
	Debug bool

	// Scheduler defaults
	Partition string
	Qos       string
	Account   string
	Walltime  int // minutes
	Nnodes    int
	Ntasks    int // tasks per node

	// Job payload defaults
	Executable string

	// Binaries and launcher settings
	SbatchBin   string // empty means look up "sbatch" in PATH
	MpiLauncher string
	PmiLibrary  string
}

// Global holds the singleton configuration instance
var Global Config

// LoadDefaults resets Global to the built-in cluster defaults.
func LoadDefaults() {
	Global = Config{
		Debug:      false,
		Partition:  "mem_0064",
		Qos:        "normal_0064",
		Account:    "p70072",
		Walltime:   30,
		Nnodes:     1,
		Ntasks:     16,
		Executable: "solve_xml_mumps",

		SbatchBin:   "",
		MpiLauncher: "mpirun",
		PmiLibrary:  "/cm/shared/apps/slurm/current/lib/libpmi.so",
	}
}
