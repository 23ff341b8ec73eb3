package commands

import (
	"time"

	"github.com/macropower/rttmlabel/pkg/config"
)

type RootArgs struct {
	cfg        *config.Config
	logLevel   *string
	logFormat  *string
	configPath *string
	server     *string
	os         *string
	output     *string
	cpuProfile *string
	timeout    *time.Duration
}

func NewRootArgs() *RootArgs {
	return &RootArgs{
		logLevel:   new(string),
		logFormat:  new(string),
		configPath: new(string),
		server:     new(string),
		os:         new(string),
		output:     new(string),
		cpuProfile: new(string),
		timeout:    new(time.Duration),
	}
}

func (a *RootArgs) GetLogLevel() string {
	return *a.logLevel
}

func (a *RootArgs) GetLogFormat() string {
	return *a.logFormat
}

func (a *RootArgs) GetConfigPath() string {
	return *a.configPath
}

func (a *RootArgs) GetServer() string {
	return *a.server
}

func (a *RootArgs) GetOS() string {
	return *a.os
}

func (a *RootArgs) GetOutput() string {
	return *a.output
}

func (a *RootArgs) GetCPUProfile() string {
	return *a.cpuProfile
}

func (a *RootArgs) GetTimeout() time.Duration {
	return *a.timeout
}

// GetConfig returns the settings resolved by the root command. It is nil
// before the command runs.
func (a *RootArgs) GetConfig() *config.Config {
	return a.cfg
}
