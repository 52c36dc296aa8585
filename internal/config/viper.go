package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	ConfigFilename = "config"
	ConfigType     = "yaml"
)

// InitViper sets up the config file search paths, environment variable
// binding and defaults. Reading a missing config file is not an error.
func InitViper() error {
	viper.SetConfigName(ConfigFilename)
	viper.SetConfigType(ConfigType)

	// Set config search paths (order matters)
	// User config (highest priority)
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(userConfigDir, "subslurm"))
	}

	// Home directory fallback
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".subslurm"))
	}

	// System-wide config (lower priority)
	viper.AddConfigPath("/etc/subslurm")

	// Environment variables (SUBSLURM_PARTITION, SUBSLURM_ACCOUNT, ...)
	viper.SetEnvPrefix("SUBSLURM")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; built-in defaults apply
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("partition", Global.Partition)
	viper.SetDefault("qos", Global.Qos)
	viper.SetDefault("account", Global.Account)
	viper.SetDefault("walltime", Global.Walltime)
	viper.SetDefault("nnodes", Global.Nnodes)
	viper.SetDefault("ntasks", Global.Ntasks)
	viper.SetDefault("executable", Global.Executable)
	viper.SetDefault("sbatch_bin", Global.SbatchBin)
	viper.SetDefault("mpi_launcher", Global.MpiLauncher)
	viper.SetDefault("pmi_library", Global.PmiLibrary)
}

// GetUserConfigPath returns the path of the per-user config file.
func GetUserConfigPath() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".subslurm", ConfigFilename+"."+ConfigType), nil
	}

	return filepath.Join(userConfigDir, "subslurm", ConfigFilename+"."+ConfigType), nil
}

// LoadFromViper copies config file / environment values into Global.
// Empty or non-positive values fall back to the built-in defaults.
func LoadFromViper() {
	if partition := viper.GetString("partition"); partition != "" {
		Global.Partition = partition
	}
	if qos := viper.GetString("qos"); qos != "" {
		Global.Qos = qos
	}
	if account := viper.GetString("account"); account != "" {
		Global.Account = account
	}
	if walltime := viper.GetInt("walltime"); walltime > 0 {
		Global.Walltime = walltime
	}
	if nnodes := viper.GetInt("nnodes"); nnodes > 0 {
		Global.Nnodes = nnodes
	}
	if ntasks := viper.GetInt("ntasks"); ntasks > 0 {
		Global.Ntasks = ntasks
	}
	if executable := viper.GetString("executable"); executable != "" {
		Global.Executable = executable
	}
	if bin := viper.GetString("sbatch_bin"); bin != "" {
		Global.SbatchBin = bin
	}
	if launcher := viper.GetString("mpi_launcher"); launcher != "" {
		Global.MpiLauncher = launcher
	}
	if lib := viper.GetString("pmi_library"); lib != "" {
		Global.PmiLibrary = lib
	}
}
