package cmd

import (
	"os"
	"strings"
	"testing"

	"github.com/jdoppler/shell-utilities/internal/script"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func TestFlagDefaults(t *testing.T) {
	tests := []struct {
		flag string
		want string
	}{
		{"walltime", "30"},
		{"name", "SLURM_job"},
		{"nnodes", "1"},
		{"ntasks", "16"},
		{"executable", "solve_xml_mumps"},
		{"partition", "mem_0064"},
		{"qos", "normal_0064"},
		{"account", "p70072"},
		{"tmp", ""},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			f := rootCmd.Flags().Lookup(tt.flag)
			if f == nil {
				t.Fatalf("flag --%s not registered", tt.flag)
			}
			if f.DefValue != tt.want {
				t.Errorf("--%s default = %q; want %q", tt.flag, f.DefValue, tt.want)
			}
		})
	}
}

func TestFlagShorthands(t *testing.T) {
	shorthands := map[string]string{
		"walltime":   "w",
		"name":       "N",
		"nnodes":     "n",
		"ntasks":     "t",
		"executable": "e",
		"jobarray":   "a",
		"dryrun":     "d",
		"tmp":        "p",
		"silent":     "s",
		"partition":  "P",
		"qos":        "Q",
		"account":    "A",
	}

	for name, short := range shorthands {
		f := rootCmd.Flags().Lookup(name)
		if f == nil {
			t.Errorf("flag --%s not registered", name)
			continue
		}
		if f.Shorthand != short {
			t.Errorf("--%s shorthand = %q; want %q", name, f.Shorthand, short)
		}
	}
}

func TestDryRunWritesScriptWithoutSubmitting(t *testing.T) {
	chdirTemp(t)

	rootCmd.SetArgs([]string{
		"--name", "foo",
		"--walltime", "45",
		"--nnodes", "2",
		"--ntasks", "8",
		"--dryrun", "--silent",
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	content, err := os.ReadFile(script.FileName)
	if err != nil {
		t.Fatalf("%s not written: %v", script.FileName, err)
	}

	got := string(content)
	for _, directive := range []string{
		"#SBATCH --job-name=foo",
		"#SBATCH --time=00:45:00",
		"#SBATCH --nodes 2",
		"#SBATCH --ntasks-per-node=8",
		"time mpirun -np $SLURM_NTASKS solve_xml_mumps",
	} {
		if !strings.Contains(got, directive) {
			t.Errorf("missing %q in generated script:\n%s", directive, got)
		}
	}
	for _, fragment := range []string{"--array", "--output="} {
		if strings.Contains(got, fragment) {
			t.Errorf("unexpected %q in generated script:\n%s", fragment, got)
		}
	}
}

func TestDryRunJobArrayPositionalDirs(t *testing.T) {
	chdirTemp(t)

	rootCmd.SetArgs([]string{"-a", "dirA", "dirB", "dirC", "--dryrun", "--silent"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	content, err := os.ReadFile(script.FileName)
	if err != nil {
		t.Fatalf("%s not written: %v", script.FileName, err)
	}

	got := string(content)
	for _, fragment := range []string{
		"#SBATCH --array 1-3",
		"JOB_DIRS=(dirA dirB dirC)",
		"gzip $OUTPUT",
	} {
		if !strings.Contains(got, fragment) {
			t.Errorf("missing %q in generated script:\n%s", fragment, got)
		}
	}
}
