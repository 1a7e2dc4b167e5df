package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	verbose       bool
	wantContainer bool
	wantObjects   bool
	wantJSON      bool
)

func isDirectory(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.IsDir()
}

func prettyPrint(v interface{}) string {
	var buf bytes.Buffer
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func dumpPath(path string, cmd *cobra.Command) {
	if !isDirectory(path) {
		dumpFile(path, cmd)
		return
	}

	var files []string
	filepath.Walk(path, func(p string, f os.FileInfo, err error) error {
		if err == nil && !f.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	for _, f := range files {
		dumpFile(f, cmd)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "unityasset-dump",
		Short: "A Unity asset file reader",
		Long:  "Reads Unity SerializedFiles, AssetBundles and Unity YAML scene/asset files.",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("unityasset-dump 0.1.0")
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump <path>...",
		Short: "Dump one or more Unity asset files",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, path := range args {
				dumpPath(path, cmd)
			}
		},
	}
	dumpCmd.Flags().BoolVarP(&wantContainer, "container", "c", true, "list the AssetBundle's container entries")
	dumpCmd.Flags().BoolVarP(&wantObjects, "objects", "o", true, "decode and list every object")
	dumpCmd.Flags().BoolVarP(&wantJSON, "json", "j", false, "print decoded field maps as JSON")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.AddCommand(versionCmd, dumpCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
