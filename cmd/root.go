package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jdoppler/shell-utilities/internal/config"
	"github.com/jdoppler/shell-utilities/internal/job"
	"github.com/jdoppler/shell-utilities/internal/scheduler"
	"github.com/jdoppler/shell-utilities/internal/script"
	"github.com/jdoppler/shell-utilities/internal/utils"
)

var (
	debugMode bool

	walltime      int
	jobName       string
	nnodes        int
	ntasks        int
	executable    string
	noMpi         bool
	setMpiLibrary bool
	jobArrayDirs  []string
	dryRun        bool
	outputFile    string
	silent        bool
	partition     string
	qos           string
	account       string
	useITP        bool
	useITPUpper   bool
	useDev        bool
)

var rootCmd = &cobra.Command{
	Use:   "subslurm [flags] [jobarray_dir...]",
	Short: "Submit a job to the SLURM Workload Manager",
	Long: `Generate a SLURM batch submission script and pipe it to sbatch.

The generated script is always written to ` + script.FileName + ` in the
current directory. With --dryrun the script is written but not submitted.

Positional arguments are appended to the --jobarray directory list, so a
job array over several directories can be submitted as:

  subslurm -a dirA dirB dirC`,
	Version:       config.VERSION,
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.ArbitraryArgs,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Step 1: Built-in defaults
		config.LoadDefaults()

		// Step 2: Config file and SUBSLURM_* environment via Viper
		if err := config.InitViper(); err != nil {
			utils.PrintDebug("Error reading config file: %v", err)
		}

		// Step 3: Load config values into Global
		config.LoadFromViper()

		// Step 4: Command-line flags (highest priority)
		if debugMode {
			utils.DebugMode = true
			config.Global.Debug = true
			utils.PrintDebug("Debug mode enabled")
			utils.PrintDebug("subslurm version: %s", utils.StyleInfo(config.VERSION))
			if configPath, err := config.GetUserConfigPath(); err == nil {
				utils.PrintDebug("User config path: %s", utils.StylePath(configPath))
			}
		}
		if silent {
			utils.QuietMode = true
		}
	},
	RunE: runSubmit,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode with verbose output")

	flags := rootCmd.Flags()
	flags.IntVarP(&walltime, "walltime", "w", 30, "Maximum job runtime (in minutes)")
	flags.StringVarP(&jobName, "name", "N", "SLURM_job", "SLURM job name")
	flags.IntVarP(&nnodes, "nnodes", "n", 1, "Number of nodes to allocate")
	flags.IntVarP(&ntasks, "ntasks", "t", 16, "Number of tasks per node")
	flags.StringVarP(&executable, "executable", "e", "solve_xml_mumps", "Executable for job submission")
	flags.BoolVar(&noMpi, "no-mpi", false, "Submit single-core job (no MPI launcher prefix)")
	flags.BoolVar(&setMpiLibrary, "set-mpi-library", false, "Set the I_MPI_PMI_LIBRARY environment variable")
	flags.StringSliceVarP(&jobArrayDirs, "jobarray", "a", nil, "Submit job array to queue (one directory per array index; repeatable)")
	flags.BoolVarP(&dryRun, "dryrun", "d", false, "Write submit file and exit")
	flags.StringVarP(&outputFile, "tmp", "p", "", "Write output and error to this file instead of slurm-<jobid>.out")
	flags.BoolVarP(&silent, "silent", "s", false, "Suppress output to stdout")
	flags.StringVarP(&partition, "partition", "P", "mem_0064", "Specify the partition")
	flags.StringVarP(&qos, "qos", "Q", "normal_0064", "Specify quality of service (QOS)")
	flags.StringVarP(&account, "account", "A", "p70072", "Specify user account")
	flags.BoolVar(&useITP, "itp", false, "Override the partition/qos/account settings and use the institute nodes")
	flags.BoolVar(&useITPUpper, "ITP", false, "Alias for --itp")
	flags.BoolVar(&useDev, "dev", false, "Use the development QOS (for runtimes < 10')")
}

// collectParameters builds the job parameter record from parsed flags.
// Flags left at their default pick up the site configuration; explicitly
// set flags always win. Positional arguments extend the job-array list
// (pflag consumes only one token per flag occurrence).
func collectParameters(flags *pflag.FlagSet, args []string) job.Parameters {
	p := job.Parameters{
		Walltime:          walltime,
		Name:              jobName,
		Nnodes:            nnodes,
		Ntasks:            ntasks,
		Executable:        executable,
		NoMpi:             noMpi,
		SetMpiLibrary:     setMpiLibrary,
		JobArrayDirs:      append([]string(nil), jobArrayDirs...),
		OutputFile:        outputFile,
		Silent:            silent,
		DryRun:            dryRun,
		Partition:         partition,
		Qos:               qos,
		Account:           account,
		UseInstituteNodes: useITP || useITPUpper,
		UseDevQueue:       useDev,
	}

	if !flags.Changed("walltime") {
		p.Walltime = config.Global.Walltime
	}
	if !flags.Changed("nnodes") {
		p.Nnodes = config.Global.Nnodes
	}
	if !flags.Changed("ntasks") {
		p.Ntasks = config.Global.Ntasks
	}
	if !flags.Changed("executable") {
		p.Executable = config.Global.Executable
	}
	if !flags.Changed("partition") {
		p.Partition = config.Global.Partition
	}
	if !flags.Changed("qos") {
		p.Qos = config.Global.Qos
	}
	if !flags.Changed("account") {
		p.Account = config.Global.Account
	}

	if len(args) > 0 && flags.Changed("jobarray") {
		p.JobArrayDirs = append(p.JobArrayDirs, args...)
	}

	return p
}

func runSubmit(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && !cmd.Flags().Changed("jobarray") {
		return fmt.Errorf("unexpected arguments %v (directories are only accepted with --jobarray)", args)
	}

	params := collectParameters(cmd.Flags(), args)
	params.ApplyOverrides()

	if !params.Silent {
		fmt.Println(params.Summary())
	}

	rendered := script.Render(params, script.LauncherOptions{
		MpiCommand: config.Global.MpiLauncher,
		PmiLibrary: config.Global.PmiLibrary,
	})

	if err := script.WriteFile(rendered); err != nil {
		return err
	}

	if !params.Silent {
		fmt.Print("\nSLURM settings:\n" + rendered)
	}

	if params.DryRun {
		utils.PrintDebug("Dry run requested: %s written, submission skipped", script.FileName)
		return nil
	}

	sched, err := scheduler.NewSlurmSchedulerWithBinary(config.Global.SbatchBin)
	if err != nil {
		return err
	}

	utils.PrintDebug("Using sbatch: %s", utils.StylePath(sched.Binary()))
	if sched.InJob() {
		utils.PrintWarning("Submitting from inside a running SLURM job (%s is set)", utils.StyleName("SLURM_JOB_ID"))
	}

	return sched.Submit(params.Name, rendered)
}
