package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/subtrackr/subscan/extractor"
	"github.com/subtrackr/subscan/extractor/common"
	"github.com/subtrackr/subscan/extractor/rules"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Extract subscription candidates from statement(s)",
	Long: `Extracts recurring-charge candidates from a statement file or a
directory of statements and prints them as JSON. No store access; this
is extraction only.`,
	Run: scanHandler,
}

func scanHandler(cmd *cobra.Command, args []string) {
	target := viper.GetString("target")

	r, err := rules.FromViper()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("error: invalid rules config: %v", err)
	}

	var candidates []common.Candidate
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		log.Println("📂 Scanning ", target)
		entries, err := os.ReadDir(target)
		if err != nil {
			log.SetOutput(os.Stderr)
			log.Fatal(err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			found, err := extractor.FromFile(filepath.Join(target, e.Name()), r)
			if err != nil {
				log.Printf("\t📄 %s: %v", e.Name(), err)
				continue
			}
			candidates = append(candidates, found...)
		}
		candidates = extractor.Deduplicate(candidates)
	} else {
		log.Println("📄 Scanning ", target)
		candidates, err = extractor.FromFile(target, r)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	if candidates == nil {
		candidates = []common.Candidate{}
	}
	asJSON, _ := json.Marshal(candidates)
	fmt.Println(string(asJSON))
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringP("file", "f", ".", "Statement file or folder to scan")
	viper.BindPFlag("target", scanCmd.Flags().Lookup("file"))
}
