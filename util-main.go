package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ikeydoherty/budgie-rd/common/ipc"
	"github.com/ikeydoherty/budgie-rd/config"
	"github.com/ikeydoherty/budgie-rd/output"
	"github.com/sirupsen/logrus"
	"gitlab.com/mstarongitlab/goutils/sliceutils"
)

var (
	utilAction *string = flag.String(
		"action",
		"outputs",
		"The action to perform. Can be one of:"+
			"\n\t- outputs: List configured outputs"+
			"\n\t- modes: List the mode of the output given with -output"+
			"\n\t- config: Print the effective configuration",
	)
	outputSelection *string = flag.String(
		"output",
		"",
		"Output to perform the action on. Required for some actions",
	)
)

func utilMain(conf *config.Config) {
	if *help {
		utilHelpMessage()
		return
	}

	switch *utilAction {
	case "outputs":
		utilListOutputs(conf)
	case "modes":
		if *outputSelection == "" {
			fmt.Println("Output has to be specified")
			return
		}
		utilListOutputModes(conf, *outputSelection)
	case "config":
		data, err := conf.Encode()
		if err != nil {
			logrus.WithError(err).Fatal("encoding config")
		}
		os.Stdout.Write(data)
	case "none":
	default:
		fmt.Printf("Unknown action %s\n", *utilAction)
	}
}

func utilHelpMessage() {
	fmt.Println("---- Help message for budgie-rd in tool mode ----")
	fmt.Println("\nIn tool mode, budgie-rd will offer various tools for figuring out configurations and similar")
	fmt.Println("\nGeneral flags:")
	fmt.Println("\t-config: Path to the config file. Default is searched as " + config.DefaultPath + " in the XDG config dirs")
	fmt.Println("\t-tool: Start as a tool instead of a compositor")
	fmt.Println("\t-headless: Run the compositor without a display backend")
	fmt.Println("\t-help: Show this help message (or the one for compositor mode if -tool is not set)")
	fmt.Println("\nTool flags:")
	fmt.Println("\t-action: The action to perform. Can be one of:")
	fmt.Println("\t\t- (default) outputs: List configured outputs")
	fmt.Println("\t\t- modes: List the mode of an output. Use with -output")
	fmt.Println("\t\t- config: Print the effective configuration as TOML")
	fmt.Println("\t-output: Output to perform the action on. Required for -action modes")
}

// configuredOutputs returns the outputs the compositor would create.
func configuredOutputs(conf *config.Config) []ipc.OutputInfo {
	return []ipc.OutputInfo{output.FromConfig(conf.Output).Info()}
}

func utilListOutputs(conf *config.Config) {
	for i, out := range configuredOutputs(conf) {
		fmt.Printf("Output %v: %s at %d,%d\n", i, out.Name, out.X, out.Y)
	}
}

func utilListOutputModes(conf *config.Config, outputName string) {
	filtered := sliceutils.Filter(configuredOutputs(conf), func(out ipc.OutputInfo) bool {
		return out.Name == outputName
	})
	if len(filtered) == 0 {
		fmt.Printf("Output %s not found\n", outputName)
		return
	}
	mode := filtered[0].Mode
	fmt.Printf("Modes for output %s:\n", outputName)
	fmt.Printf("\t- %dx%d@%d (configured)\n", mode.Width, mode.Height, mode.RefreshRate)
}
